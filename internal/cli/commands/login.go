package commands

import (
	"context"
	"fmt"

	"GoMFiles/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Authenticate and store the session token" }
func (loginCmd) Usage() string       { return "login" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := sessions(cfg).Login(ctx)
	if err != nil {
		return err
	}
	s := c.Session()
	fmt.Fprintf(Out, "Logged in to %s as %s\n", s.Vault, s.User)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
