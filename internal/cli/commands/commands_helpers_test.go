package commands

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"GoMFiles/internal/config"
	"GoMFiles/internal/handlers"
	"GoMFiles/internal/repo"
	"GoMFiles/internal/service"
	"GoMFiles/pkg/mfiles"

	"go.uber.org/zap"
)

// fakeCmd lets a test control what Run returns.
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

// withStdoutCapture redirects Out for the duration of fn.
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// clearCredentialEnv keeps the developer's MFILES_* variables out of tests.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MFILES_URL", "MFILES_USER", "MFILES_PASS", "MFILES_VAULT"} {
		t.Setenv(k, "")
	}
}

// withFakeVault starts a seeded fake vault and returns a client config whose
// session file and journal live in a temp dir. Clients never prompt.
func withFakeVault(t *testing.T) *config.Config {
	t.Helper()
	clearCredentialEnv(t)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB(fmt.Sprintf("file:cmd_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	logger := zap.NewNop().Sugar()
	vault := service.NewVaultService(repo.NewStructureRepository(db), repo.NewObjectRepository(db), repo.NewUploadRepository(db), logger)
	users := service.NewUserService(repo.NewUserRepository(db))
	if err := service.ApplySeed(context.Background(), service.DefaultSeed(), vault, users); err != nil {
		t.Fatalf("seed: %v", err)
	}
	srvCfg := &config.Config{Vault: service.DefaultVault, TokenSecret: "test-secret"}
	srv := httptest.NewServer(handlers.NewHandler(users, vault, logger, srvCfg).Router)
	t.Cleanup(srv.Close)

	oldOpts := clientOptions
	clientOptions = []mfiles.Option{mfiles.WithCredentialProviders()}
	t.Cleanup(func() { clientOptions = oldOpts })

	dir := t.TempDir()
	return &config.Config{
		Server:      srv.URL + "/REST/",
		Vault:       service.DefaultVault,
		User:        "TestUser",
		Password:    "SecretPassword",
		Timeout:     5 * time.Second,
		SessionFile: filepath.Join(dir, "session.json"),
		JournalDir:  filepath.Join(dir, "vaults"),
	}
}

// run dispatches one command line and returns its exit code and output.
func run(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() {
		code = Dispatch(context.Background(), cfg, args)
	})
	return code, out
}
