package commands

import (
	"context"
	"fmt"

	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/config"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Mark an object as deleted" }
func (deleteCmd) Usage() string       { return "delete <type> <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	ids, err := parseInts(args[1])
	if err != nil {
		return err
	}
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	typ, err := objectType(ctx, c, args[0])
	if err != nil {
		return err
	}
	ov, err := c.DeleteObject(ctx, typ, ids[0])
	if err != nil {
		return err
	}
	track(cfg, c, model.ActionDelete, ov)
	printObject("Deleted: ", ov)
	return nil
}

type destroyCmd struct{}

func (destroyCmd) Name() string        { return "destroy" }
func (destroyCmd) Description() string { return "Permanently remove an object and all its versions" }
func (destroyCmd) Usage() string       { return "destroy <type> <id>" }

func (destroyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	ids, err := parseInts(args[1])
	if err != nil {
		return err
	}
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	typ, err := objectType(ctx, c, args[0])
	if err != nil {
		return err
	}
	if err := c.DestroyObject(ctx, typ, ids[0]); err != nil {
		return err
	}
	trackRef(cfg, c, model.ActionDestroy, typ, ids[0], "")
	fmt.Fprintf(Out, "Destroyed: type=%d id=%d\n", typ, ids[0])
	return nil
}

func init() {
	RegisterCmd(deleteCmd{})
	RegisterCmd(destroyCmd{})
}
