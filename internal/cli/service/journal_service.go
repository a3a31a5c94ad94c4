package service

import (
	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/cli/repo"
	"GoMFiles/pkg/mfiles"
)

// JournalService records what the CLI did to the vault.
type JournalService struct {
	repo repo.JournalRepository
}

// NewJournalService wraps a journal repository.
func NewJournalService(r repo.JournalRepository) *JournalService {
	return &JournalService{repo: r}
}

// Track records action against an object version. A nil version records the
// action with zero IDs.
func (s *JournalService) Track(action string, ov *mfiles.ObjectVersion) (string, error) {
	e := model.Entry{Action: action}
	if ov != nil {
		e.ObjectType = ov.ObjVer.Type
		e.ObjectID = ov.ObjVer.ID
		e.Version = ov.ObjVer.Version
		e.Title = ov.Title
	}
	return s.repo.Record(e)
}

// TrackRef records action against an object known only by type and ID.
func (s *JournalService) TrackRef(action string, objectType, objectID int, title string) (string, error) {
	return s.repo.Record(model.Entry{Action: action, ObjectType: objectType, ObjectID: objectID, Title: title})
}

// History returns up to limit entries, newest first.
func (s *JournalService) History(limit int) ([]model.Entry, error) {
	return s.repo.List(limit)
}
