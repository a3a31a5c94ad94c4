package commands

import (
	"context"
	"fmt"

	"GoMFiles/internal/config"
	"GoMFiles/pkg/mfiles"
)

type resolveCmd struct{}

func (resolveCmd) Name() string        { return "resolve" }
func (resolveCmd) Description() string { return "Translate a name into its ID" }
func (resolveCmd) Usage() string {
	return "resolve <object|class|property> <name> | resolve value <list-id> <name> [owner-id...]"
}

func (resolveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	if args[0] == "value" {
		return resolveValue(ctx, cfg, args[1:])
	}
	if len(args) != 2 {
		return ErrUsage
	}
	category, err := mfiles.ParseCategory(args[0])
	if err != nil {
		return ErrUsage
	}
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	id, err := c.ResolveID(ctx, args[1], category)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, id)
	return nil
}

func resolveValue(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	list, err := parseInts(args[0])
	if err != nil {
		return err
	}
	owners, err := parseInts(args[2:]...)
	if err != nil {
		return err
	}
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	id, err := c.ResolveValue(ctx, args[1], list[0], owners)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, id)
	return nil
}

func init() { RegisterCmd(resolveCmd{}) }
