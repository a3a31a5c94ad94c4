package commands

import (
	"context"

	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/config"
	"GoMFiles/pkg/mfiles"
)

type createCmd struct{}

func (createCmd) Name() string        { return "create" }
func (createCmd) Description() string { return "Create an object without a file" }
func (createCmd) Usage() string       { return "create <name> <type> <class> [Prop=Value...]" }

func (createCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	props, err := parseProperties(args[3:])
	if err != nil {
		return err
	}
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	ov, err := c.CreateObject(ctx, args[0], mfiles.ParseRef(args[1]), mfiles.ParseRef(args[2]), props, nil)
	if err != nil {
		return err
	}
	track(cfg, c, model.ActionCreate, ov)
	printObject("Created: ", ov)
	return nil
}

func init() { RegisterCmd(createCmd{}) }
