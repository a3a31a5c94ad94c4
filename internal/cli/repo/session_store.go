package repo

import "GoMFiles/internal/cli/model"

// SessionStore persists the token of the last login on the client.
type SessionStore interface {
	Save(s model.Session) error
	Load() (*model.Session, error)
	Clear() error
}
