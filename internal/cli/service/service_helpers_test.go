package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"GoMFiles/internal/cli/model"

	"github.com/stretchr/testify/mock"
)

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Save(s model.Session) error {
	return m.Called(s).Error(0)
}

func (m *mockSessionStore) Load() (*model.Session, error) {
	args := m.Called()
	if v, ok := args.Get(0).(*model.Session); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionStore) Clear() error {
	return m.Called().Error(0)
}

type mockJournalRepo struct{ mock.Mock }

func (m *mockJournalRepo) Record(e model.Entry) (string, error) {
	args := m.Called(e)
	return args.String(0), args.Error(1)
}

func (m *mockJournalRepo) List(limit int) ([]model.Entry, error) {
	args := m.Called(limit)
	if v, ok := args.Get(0).([]model.Entry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// authServer answers token requests with token and counts them.
func authServer(t *testing.T, token string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/REST/server/authenticationtokens" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&calls, 1)
		_ = json.NewEncoder(w).Encode(map[string]string{"Value": token})
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MFILES_URL", "MFILES_USER", "MFILES_PASS", "MFILES_VAULT"} {
		t.Setenv(k, "")
	}
}
