package service

import (
	"context"
	"errors"
	"fmt"

	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/cli/repo"
	"GoMFiles/internal/config"
	"GoMFiles/pkg/mfiles"

	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned when no credentials could be resolved for
// the configured server and vault.
var ErrNotAuthenticated = errors.New("not authenticated: set -vault and MFILES_USER/MFILES_PASS, or run login")

// SessionService opens vault clients, reusing the stored token when it was
// issued for the same server and vault.
type SessionService struct {
	cfg   *config.Config
	store repo.SessionStore
	log   *zap.SugaredLogger
	opts  []mfiles.Option
}

// NewSessionService builds a service. extra options are appended to every
// client it creates.
func NewSessionService(cfg *config.Config, store repo.SessionStore, log *zap.SugaredLogger, extra ...mfiles.Option) *SessionService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SessionService{cfg: cfg, store: store, log: log, opts: extra}
}

func (s *SessionService) baseOpts(vault string) []mfiles.Option {
	opts := []mfiles.Option{
		mfiles.WithServer(s.cfg.Server),
		mfiles.WithVault(vault),
		mfiles.WithTimeout(s.cfg.Timeout),
		mfiles.WithLogger(s.log),
	}
	if s.cfg.User != "" {
		opts = append(opts, mfiles.WithUser(s.cfg.User))
	}
	if s.cfg.Password != "" {
		opts = append(opts, mfiles.WithPassword(s.cfg.Password))
	}
	return append(opts, s.opts...)
}

// Current returns the stored session, or nil when there is none.
func (s *SessionService) Current() *model.Session {
	sess, err := s.store.Load()
	if err != nil {
		return nil
	}
	return sess
}

// vault picks the configured vault, falling back to the stored one.
func (s *SessionService) vault(stored *model.Session) string {
	if s.cfg.Vault != "" {
		return s.cfg.Vault
	}
	if stored != nil && stored.Server == s.cfg.Server {
		return stored.Vault
	}
	return ""
}

// Connect returns an authenticated client. A stored token is reused without a
// round trip; otherwise Login is performed.
func (s *SessionService) Connect(ctx context.Context) (*mfiles.Client, error) {
	stored := s.Current()
	vault := s.vault(stored)
	if stored != nil && stored.Matches(s.cfg.Server, vault) && (s.cfg.User == "" || s.cfg.User == stored.User) {
		s.log.Debugw("reusing stored session", "server", stored.Server, "vault", stored.Vault, "user", stored.User)
		opts := append(s.baseOpts(vault), mfiles.WithToken(stored.Token), mfiles.WithUser(stored.User))
		return mfiles.New(ctx, opts...)
	}
	return s.login(ctx, vault)
}

// Login always requests a new token and stores it.
func (s *SessionService) Login(ctx context.Context) (*mfiles.Client, error) {
	return s.login(ctx, s.vault(s.Current()))
}

func (s *SessionService) login(ctx context.Context, vault string) (*mfiles.Client, error) {
	c, err := mfiles.New(ctx, s.baseOpts(vault)...)
	if err != nil {
		return nil, err
	}
	if c.State() != mfiles.StateAuthenticated {
		return nil, ErrNotAuthenticated
	}
	sess := c.Session()
	if err := s.store.Save(model.Session{Server: sess.Server, Vault: sess.Vault, User: sess.User, Token: sess.Token}); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	s.log.Infow("logged in", "server", sess.Server, "vault", sess.Vault, "user", sess.User)
	return c, nil
}

// Logout forgets the stored session.
func (s *SessionService) Logout() error {
	return s.store.Clear()
}
