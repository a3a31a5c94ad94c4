package bootstrap

import (
	"fmt"

	"GoMFiles/internal/cli/repo"
	reposqlite "GoMFiles/internal/cli/repo/sqlite"
)

// OpenJournal opens the journal of vault under baseDir, runs migrations and
// returns (repo, cleanup, error). cleanup closes the database.
func OpenJournal(baseDir, vault string) (repo.JournalRepository, func() error, error) {
	if vault == "" {
		return nil, nil, fmt.Errorf("no active vault: set -vault or MFILES_VAULT, or run login")
	}
	r, _, err := reposqlite.OpenForVault(baseDir, vault)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	if err := r.Migrate(); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("migrate journal: %w", err)
	}
	cleanup := func() error { return r.Close() }
	return r, cleanup, nil
}
