package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// DefaultServer is used when neither MFILES_URL nor -server is given.
const DefaultServer = "http://localhost/m-files/REST/"

type Config struct {
	// Client-side settings
	Server      string        `env:"MFILES_URL"`
	User        string        `env:"MFILES_USER"`
	Password    string        `env:"MFILES_PASS"` // env only, never a flag
	Vault       string        `env:"MFILES_VAULT"`
	Timeout     time.Duration `env:"MFILES_TIMEOUT"`
	SessionFile string        `env:"SESSION_FILE"`
	JournalDir  string        `env:"CLIENT_DB_PATH"`
	Version     bool          `env:"-"` // show client version and exit (flag only)

	// Shared settings
	LogLevel string `env:"LOG_LEVEL"`

	// Fake vault settings
	Addr        string `env:"FAKEVAULT_ADDR"`
	DatabaseDSN string `env:"DATABASE_URI"`
	TokenSecret string `env:"TOKEN_SECRET"`
	SeedFile    string `env:"FAKEVAULT_SEED"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags override env
	flag.StringVar(&cfg.Server, "server", cfg.Server, "M-Files REST API URL")
	flag.StringVar(&cfg.User, "user", cfg.User, "M-Files user")
	flag.StringVar(&cfg.Vault, "vault", cfg.Vault, "M-Files vault GUID")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	flag.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "path to the stored session (client)")
	flag.StringVar(&cfg.JournalDir, "client-db", cfg.JournalDir, "directory of the local activity journal (client)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, error, quiet")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address of the fake vault")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "fake vault database DSN (sqlite path or postgres URL)")
	flag.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "fake vault token signing secret")
	flag.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "fake vault seed JSON file")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if !strings.HasSuffix(cfg.Server, "/") {
		cfg.Server += "/"
	}
	cfg.Vault = NormalizeVault(cfg.Vault)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}

	home, _ := os.UserConfigDir()
	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(home, "GoMFiles", "session.json")
	}
	if cfg.JournalDir == "" {
		cfg.JournalDir = filepath.Join(home, "GoMFiles", "vaults")
	}

	if cfg.Addr == "" {
		cfg.Addr = "localhost:8082"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "file::memory:?cache=shared"
	}
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = "dev-secret-key"
	}
}

// NormalizeVault rewrites a vault GUID into the braced upper-case form the
// server prints, e.g. {C840BE1A-5B47-4AC0-8EF7-835C166C8E24}. Values that are
// not GUIDs are returned unchanged.
func NormalizeVault(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return v
	}
	return "{" + strings.ToUpper(id.String()) + "}"
}
