package model

import "time"

// Journal actions.
const (
	ActionCreate   = "create"
	ActionUpload   = "upload"
	ActionDownload = "download"
	ActionCheckOut = "checkout"
	ActionCheckIn  = "checkin"
	ActionDelete   = "delete"
	ActionDestroy  = "destroy"
)

// Entry is one line of the local activity journal.
type Entry struct {
	ID         string
	Action     string
	ObjectType int
	ObjectID   int
	Version    int
	Title      string
	CreatedAt  time.Time
}
