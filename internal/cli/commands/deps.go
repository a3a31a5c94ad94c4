package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"GoMFiles/internal/cli/bootstrap"
	fsrepo "GoMFiles/internal/cli/repo/fs"
	"GoMFiles/internal/cli/service"
	"GoMFiles/internal/config"
	"GoMFiles/pkg/mfiles"

	"go.uber.org/zap"
)

// Log is the logger shared by commands and the clients they open.
var Log = zap.NewNop().Sugar()

// SetLogger replaces Log. A nil logger is ignored.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		Log = l
	}
}

// clientOptions are appended to every client a command opens.
var clientOptions []mfiles.Option

func sessions(cfg *config.Config) *service.SessionService {
	return service.NewSessionService(cfg, fsrepo.NewSessionFSStore(cfg.SessionFile), Log, clientOptions...)
}

func connect(ctx context.Context, cfg *config.Config) (*mfiles.Client, error) {
	return sessions(cfg).Connect(ctx)
}

// track appends to the journal of the client's vault. Journal failures are
// logged and never fail the command.
func track(cfg *config.Config, c *mfiles.Client, action string, ov *mfiles.ObjectVersion) {
	withJournal(cfg, c, func(j *service.JournalService) error {
		_, err := j.Track(action, ov)
		return err
	})
}

func trackRef(cfg *config.Config, c *mfiles.Client, action string, objectType, objectID int, title string) {
	withJournal(cfg, c, func(j *service.JournalService) error {
		_, err := j.TrackRef(action, objectType, objectID, title)
		return err
	})
}

func withJournal(cfg *config.Config, c *mfiles.Client, fn func(*service.JournalService) error) {
	r, done, err := bootstrap.OpenJournal(cfg.JournalDir, c.Session().Vault)
	if err != nil {
		Log.Warnw("journal unavailable", "error", err)
		return
	}
	defer done()
	if err := fn(service.NewJournalService(r)); err != nil {
		Log.Warnw("journal write failed", "error", err)
	}
}

// parseProperties turns Name=Value arguments into ordered properties.
func parseProperties(args []string) ([]mfiles.Property, error) {
	props := make([]mfiles.Property, 0, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: property %q must be Name=Value", ErrUsage, a)
		}
		props = append(props, mfiles.Property{Name: name, Value: value})
	}
	return props, nil
}

// objectType resolves a numeric ID or an object type name.
func objectType(ctx context.Context, c *mfiles.Client, s string) (int, error) {
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	return c.ResolveID(ctx, s, mfiles.CategoryObject)
}

func parseInts(args ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrUsage, a)
		}
		out[i] = n
	}
	return out, nil
}

func serverMessage(body string) string {
	var m struct {
		Message string `json:"Message"`
	}
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return ""
	}
	return m.Message
}

func printObject(prefix string, ov *mfiles.ObjectVersion) {
	state := ""
	if ov.ObjectCheckedOut {
		state = " (checked out)"
	}
	if ov.Deleted {
		state += " (deleted)"
	}
	fmt.Fprintf(Out, "%s%s  type=%d id=%d ver=%d%s\n", prefix, ov.Title, ov.ObjVer.Type, ov.ObjVer.ID, ov.ObjVer.Version, state)
}
