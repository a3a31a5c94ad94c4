// Package mfiles is a client for the M-Files REST API.
//
// It covers search, upload, download, object creation, check-in/check-out and
// delete/destroy, and translates human readable object type, class, property
// and value list item names into the numeric IDs the server expects.
//
// A Client is not safe for concurrent use; use one client per goroutine or
// guard it externally.
package mfiles

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultServer is the REST endpoint of a local M-Files installation.
const DefaultServer = "http://localhost/m-files/REST/"

// State is the authentication state of a Client.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is the connection state owned by a Client.
type Session struct {
	Server string
	Vault  string
	User   string
	Token  string
}

// Client talks to one vault on one server.
type Client struct {
	httpClient *http.Client
	log        *zap.SugaredLogger
	fs         afero.Fs
	providers  []CredentialProvider

	// creds holds explicit and previously resolved credentials.
	creds   Credentials
	session Session
	state   State
	stale   bool
}

// Option configures a Client.
type Option func(*Client)

// WithServer sets the REST API base URL.
func WithServer(server string) Option { return func(c *Client) { c.creds.Server = server } }

// WithUser sets the user name to log in with.
func WithUser(user string) Option { return func(c *Client) { c.creds.User = user } }

// WithPassword sets the password to log in with.
func WithPassword(password string) Option { return func(c *Client) { c.creds.Password = password } }

// WithVault sets the vault GUID to connect to.
func WithVault(vault string) Option { return func(c *Client) { c.creds.Vault = vault } }

// WithToken restores a previously issued authentication token. When server and
// vault are known as well, New skips the login round trip.
func WithToken(token string) Option { return func(c *Client) { c.session.Token = token } }

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFs sets the file system used by UploadFile and DownloadFile.
func WithFs(fs afero.Fs) Option { return func(c *Client) { c.fs = fs } }

// WithCredentialProviders replaces the fallback providers consulted after
// explicit and stored values. The default is environment, then terminal prompt.
func WithCredentialProviders(p ...CredentialProvider) Option {
	return func(c *Client) { c.providers = p }
}

// New creates a client and authenticates once. If server or vault cannot be
// resolved the client is returned unauthenticated and no request is made.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop().Sugar(),
		fs:         afero.NewOsFs(),
		providers: []CredentialProvider{
			EnvProvider{},
			NewTerminalPrompt(os.Stdin, os.Stderr),
		},
	}
	for _, o := range opts {
		o(c)
	}
	if c.session.Token != "" && c.creds.Server != "" && c.creds.Vault != "" {
		c.session.Server = normalizeServer(c.creds.Server)
		c.session.Vault = c.creds.Vault
		c.session.User = c.creds.User
		c.state = StateAuthenticated
		return c, nil
	}
	if err := c.Rebuild(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// SetServer changes the server URL. Call Rebuild to re-authenticate.
func (c *Client) SetServer(server string) {
	c.creds.Server = server
	c.stale = true
}

// SetUser changes the user name. Call Rebuild to re-authenticate.
func (c *Client) SetUser(user string) {
	c.creds.User = user
	c.stale = true
}

// SetPassword changes the password. Call Rebuild to re-authenticate.
func (c *Client) SetPassword(password string) {
	c.creds.Password = password
	c.stale = true
}

// SetVault changes the vault GUID. Call Rebuild to re-authenticate.
func (c *Client) SetVault(vault string) {
	c.creds.Vault = vault
	c.stale = true
}

// Stale reports whether configuration changed since the last Rebuild.
func (c *Client) Stale() bool { return c.stale }

// State returns the authentication state.
func (c *Client) State() State { return c.state }

// Session returns a copy of the current session.
func (c *Client) Session() Session { return c.session }

// Token returns the current authentication token, empty when unauthenticated.
func (c *Client) Token() string { return c.session.Token }

func normalizeServer(server string) string {
	if server == "" || strings.HasSuffix(server, "/") {
		return server
	}
	return server + "/"
}
