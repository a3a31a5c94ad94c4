package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"GoMFiles/internal/repo"

	"github.com/stretchr/testify/require"
)

// newSeededVault opens a private in-memory database with the default seed.
func newSeededVault(t *testing.T) (*VaultService, *UserService) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	vault := NewVaultService(repo.NewStructureRepository(db), repo.NewObjectRepository(db), repo.NewUploadRepository(db), nil)
	users := NewUserService(repo.NewUserRepository(db))
	require.NoError(t, ApplySeed(context.Background(), DefaultSeed(), vault, users))
	return vault, users
}
