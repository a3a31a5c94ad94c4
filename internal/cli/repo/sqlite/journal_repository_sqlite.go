package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/cli/repo"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// JournalRepositorySQLite stores the activity journal of one vault in a local
// SQLite file.
type JournalRepositorySQLite struct {
	db    *sql.DB
	vault string
}

var _ repo.JournalRepository = (*JournalRepositorySQLite)(nil)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// dirName turns a vault GUID into a directory name.
func dirName(vault string) string {
	return strings.Trim(unsafeChars.ReplaceAllString(vault, ""), ".")
}

// OpenForVault opens (and creates if needed) the journal file of a vault under
// baseDir. The second value is the database path.
func OpenForVault(baseDir, vault string) (*JournalRepositorySQLite, string, error) {
	name := dirName(vault)
	if name == "" {
		return nil, "", errors.New("empty vault for journal")
	}
	if baseDir == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", err
		}
		baseDir = filepath.Join(cfgDir, "GoMFiles", "vaults")
	}
	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "journal.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	return &JournalRepositorySQLite{db: db, vault: vault}, dbPath, nil
}

// Close closes the database.
func (r *JournalRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate creates the tables and indexes.
func (r *JournalRepositorySQLite) Migrate() error {
	_, err := r.db.Exec(initialDDL())
	return err
}

// Record appends an entry. ID and CreatedAt are filled when empty.
func (r *JournalRepositorySQLite) Record(e model.Entry) (string, error) {
	if e.Action == "" {
		return "", errors.New("action is required")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO journal(id, action, object_type, object_id, version, title, created_at)
        VALUES(?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Action, e.ObjectType, e.ObjectID, e.Version, e.Title, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("record %s: %w", e.Action, err)
	}
	return e.ID, nil
}

// List returns entries ordered by created_at DESC.
func (r *JournalRepositorySQLite) List(limit int) ([]model.Entry, error) {
	q := `SELECT id, action, object_type, object_id, version, title, created_at FROM journal ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []model.Entry
	for rows.Next() {
		var e model.Entry
		var ts int64
		if err := rows.Scan(&e.ID, &e.Action, &e.ObjectType, &e.ObjectID, &e.Version, &e.Title, &ts); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(0, ts)
		res = append(res, e)
	}
	return res, rows.Err()
}
