package commands

import (
	"context"
	"fmt"

	"GoMFiles/internal/cli/bootstrap"
	"GoMFiles/internal/cli/service"
	"GoMFiles/internal/config"
)

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Show what this client did in the vault" }
func (historyCmd) Usage() string       { return "history [limit]" }

func (historyCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	limit := 0
	if len(args) == 1 {
		n, err := parseInts(args[0])
		if err != nil {
			return err
		}
		limit = n[0]
	}
	vault := cfg.Vault
	if vault == "" {
		if sess := sessions(cfg).Current(); sess != nil {
			vault = sess.Vault
		}
	}
	r, done, err := bootstrap.OpenJournal(cfg.JournalDir, vault)
	if err != nil {
		return err
	}
	defer done()
	list, err := service.NewJournalService(r).History(limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No entries")
		return nil
	}
	for _, e := range list {
		fmt.Fprintf(Out, "%s  %-9s type=%d id=%d ver=%d  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Action, e.ObjectType, e.ObjectID, e.Version, e.Title)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(historyCmd{}) }
