package commands

import (
	"context"
	"fmt"

	"GoMFiles/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the stored session and check it against the server" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	svc := sessions(cfg)
	sess := svc.Current()
	if sess == nil {
		fmt.Fprintln(Out, "Status: not logged in")
		return nil
	}
	fmt.Fprintf(Out, "Server: %s\nVault:  %s\nUser:   %s\nSince:  %s\n",
		sess.Server, sess.Vault, sess.User, sess.SavedAt.Local().Format("2006-01-02 15:04:05"))
	c, err := svc.Connect(ctx)
	if err != nil {
		return err
	}
	if _, err := c.ObjectTypes(ctx); err != nil {
		return fmt.Errorf("session check: %w", err)
	}
	fmt.Fprintln(Out, "Status: authorized")
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
