package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"GoMFiles/internal/cli/model"
)

func TestOpenJournal_SuccessAndCleanup(t *testing.T) {
	r, done, err := OpenJournal(t.TempDir(), "{C840BE1A-5B47-4AC0-8EF7-835C166C8E24}")
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	if _, err := r.Record(model.Entry{Action: model.ActionCreate, ObjectID: 1}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := done(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	// closing twice must not panic
	_ = done()
}

func TestOpenJournal_ErrorWhenNoVault(t *testing.T) {
	if _, _, err := OpenJournal(t.TempDir(), ""); err == nil {
		t.Fatalf("expected error when no vault is known")
	}
}

func TestOpenJournal_FailsWhenBaseIsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "not_dir")
	if err := os.WriteFile(tmpFile, []byte("x"), 0o600); err != nil {
		t.Fatalf("prepare tmp file: %v", err)
	}
	if _, _, err := OpenJournal(tmpFile, "{V}"); err == nil {
		t.Fatalf("expected error when base dir points to a file")
	}
}
