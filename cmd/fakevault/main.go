package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GoMFiles/internal/config"
	"GoMFiles/internal/handlers"
	"GoMFiles/internal/logger"
	"GoMFiles/internal/middleware"
	"GoMFiles/internal/repo"
	"GoMFiles/internal/service"

	"github.com/spf13/afero"
)

func main() {
	cfg := config.NewConfig()

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	sugar := zl.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		_ = zl.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB))
	vaultService := service.NewVaultService(
		repo.NewStructureRepository(gormDB),
		repo.NewObjectRepository(gormDB),
		repo.NewUploadRepository(gormDB),
		sugar,
	)

	seed := service.DefaultSeed()
	if cfg.SeedFile != "" {
		seed, err = service.LoadSeed(afero.NewOsFs(), cfg.SeedFile)
		if err != nil {
			sugar.Fatalw("failed to load seed", "file", cfg.SeedFile, "error", err)
		}
	}
	if cfg.Vault == "" {
		cfg.Vault = config.NormalizeVault(seed.Vault)
	}
	if err := service.ApplySeed(ctx, seed, vaultService, userService); err != nil {
		sugar.Fatalw("failed to seed vault", "error", err)
	}

	h := handlers.NewHandler(userService, vaultService, sugar, cfg)
	srv := &http.Server{Addr: cfg.Addr, Handler: h.Router}

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	sugar.Infow("Starting fake vault",
		"addr", cfg.Addr,
		"vault", cfg.Vault,
		"postgres", repo.IsPostgresDSN(cfg.DatabaseDSN),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
}
