package repo

import "GoMFiles/internal/cli/model"

// JournalRepository is the port to the local activity journal of one vault.
type JournalRepository interface {
	// Record appends an entry and returns its ID.
	Record(e model.Entry) (string, error)

	// List returns entries, newest first. limit <= 0 means all.
	List(limit int) ([]model.Entry, error)
}
