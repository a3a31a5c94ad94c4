package commands

import (
	"context"

	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/config"
)

type checkoutCmd struct{}

func (checkoutCmd) Name() string        { return "checkout" }
func (checkoutCmd) Description() string { return "Check out the latest version of an object" }
func (checkoutCmd) Usage() string       { return "checkout <type> <id>" }

func (checkoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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
	ov, err := c.CheckOut(ctx, typ, ids[0])
	if err != nil {
		return err
	}
	track(cfg, c, model.ActionCheckOut, ov)
	printObject("Checked out: ", ov)
	return nil
}

type checkinCmd struct{}

func (checkinCmd) Name() string        { return "checkin" }
func (checkinCmd) Description() string { return "Check in a checked out version" }
func (checkinCmd) Usage() string       { return "checkin <type> <id> <version>" }

func (checkinCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	nums, err := parseInts(args[1], args[2])
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
	ov, err := c.CheckIn(ctx, typ, nums[0], nums[1])
	if err != nil {
		return err
	}
	track(cfg, c, model.ActionCheckIn, ov)
	printObject("Checked in: ", ov)
	return nil
}

func init() {
	RegisterCmd(checkoutCmd{})
	RegisterCmd(checkinCmd{})
}
