package model

import "time"

// Session is the last successful login persisted between CLI runs.
// The password is never stored.
type Session struct {
	Server  string    `json:"server"`
	Vault   string    `json:"vault"`
	User    string    `json:"user"`
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// Matches reports whether the session was issued for server and vault.
func (s Session) Matches(server, vault string) bool {
	return s.Token != "" && s.Server == server && s.Vault == vault
}
