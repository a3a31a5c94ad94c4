package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"GoMFiles/internal/cli/commands"
	"GoMFiles/internal/config"
	"GoMFiles/internal/logger"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	commands.SetLogger(zl.Sugar())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()
	_ = zl.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func printVersion() {
	fmt.Printf("GoMFiles CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
