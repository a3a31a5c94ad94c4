package commands

import (
	"context"
	"fmt"
	"strings"

	"GoMFiles/internal/config"
)

type searchCmd struct{}

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "Quick search across the vault" }
func (searchCmd) Usage() string       { return "search <query>" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := c.QuickSearch(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(res.Items) == 0 {
		fmt.Fprintln(Out, "Nothing found")
		return nil
	}
	for i := range res.Items {
		printObject("- ", &res.Items[i])
		for _, f := range res.Items[i].Files {
			fmt.Fprintf(Out, "    file id=%d %s.%s (%d bytes)\n", f.ID, f.Name, f.Extension, f.Size)
		}
	}
	more := ""
	if res.MoreResults {
		more = " (more available)"
	}
	fmt.Fprintf(Out, "Total: %d%s\n", len(res.Items), more)
	return nil
}

func init() { RegisterCmd(searchCmd{}) }
