package commands

import (
	"context"
	"fmt"

	"GoMFiles/internal/config"
	"GoMFiles/pkg/mfiles"
)

type typesCmd struct{}

func (typesCmd) Name() string        { return "types" }
func (typesCmd) Description() string { return "List object types, classes or properties" }
func (typesCmd) Usage() string       { return "types <object|class|property>" }

func (typesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
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
	list, err := c.Types(ctx, category)
	if err != nil {
		return err
	}
	for _, t := range list {
		if category == mfiles.CategoryProperty {
			fmt.Fprintf(Out, "%6d  %-32s datatype=%d valuelist=%d\n", t.ID, t.Name, t.DataType, t.ValueList)
			continue
		}
		fmt.Fprintf(Out, "%6d  %s\n", t.ID, t.Name)
	}
	return nil
}

func init() { RegisterCmd(typesCmd{}) }
