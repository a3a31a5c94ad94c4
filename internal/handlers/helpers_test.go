package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"GoMFiles/internal/config"
	"GoMFiles/internal/handlers"
	"GoMFiles/internal/repo"
	"GoMFiles/internal/service"
	"GoMFiles/pkg/mfiles"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testUser     = "TestUser"
	testPassword = "SecretPassword"
)

// newTestRouter builds the full stack on a private in-memory database with
// the default seed applied.
func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	return newTestRouterWithLogger(t, zap.NewNop().Sugar())
}

func newTestRouterWithLogger(t *testing.T, logger *zap.SugaredLogger) (http.Handler, *config.Config) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB(fmt.Sprintf("file:h_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{Vault: service.DefaultVault, TokenSecret: "test-secret"}
	vault := service.NewVaultService(repo.NewStructureRepository(db), repo.NewObjectRepository(db), repo.NewUploadRepository(db), logger)
	users := service.NewUserService(repo.NewUserRepository(db))
	require.NoError(t, service.ApplySeed(context.Background(), service.DefaultSeed(), vault, users))

	h := handlers.NewHandler(users, vault, logger, cfg)
	return h.Router, cfg
}

// newTestServer starts the router on an httptest server.
func newTestServer(t *testing.T) (*httptest.Server, *config.Config) {
	t.Helper()
	router, cfg := newTestRouter(t)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, cfg
}

// newClient logs in with the seeded account and never prompts.
func newClient(t *testing.T, srv *httptest.Server, fs afero.Fs) *mfiles.Client {
	t.Helper()
	c, err := mfiles.New(context.Background(),
		mfiles.WithServer(srv.URL+"/REST/"),
		mfiles.WithVault(service.DefaultVault),
		mfiles.WithUser(testUser),
		mfiles.WithPassword(testPassword),
		mfiles.WithFs(fs),
		mfiles.WithCredentialProviders(),
	)
	require.NoError(t, err)
	require.Equal(t, mfiles.StateAuthenticated, c.State())
	return c
}

// login returns a token for the seeded account.
func login(t *testing.T, router http.Handler) string {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/REST/server/authenticationtokens", "", map[string]string{
		"Username": testUser, "Password": testPassword, "VaultGuid": service.DefaultVault,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var out struct{ Value string }
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.NotEmpty(t, out.Value)
	return out.Value
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Authentication", token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct{ Message string }
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out.Message
}
