package mfiles

import (
	"context"
	"errors"
	"net/http"
)

const authEndpoint = "server/authenticationtokens"

type authRequest struct {
	Username  string `json:"Username"`
	Password  string `json:"Password"`
	VaultGuid string `json:"VaultGuid"`
}

type authResponse struct {
	Value string `json:"Value"`
}

// Rebuild resolves credentials from stored values and providers and
// authenticates once. It is the single point where configuration changes made
// through the setters take effect.
func (c *Client) Rebuild(ctx context.Context) error {
	return c.Login(ctx, Credentials{})
}

// Login authenticates with explicit credentials taking priority over stored
// values, which in turn take priority over the providers. Resolved values are
// stored for later calls. If the quadruple stays incomplete no request is made,
// the token is cleared and Login returns nil.
func (c *Client) Login(ctx context.Context, explicit Credentials) error {
	c.state = StateAuthenticating
	c.stale = false

	creds, err := resolveCredentials(ctx, explicit.fill(c.creds), c.providers)
	if err != nil {
		c.state = StateUnauthenticated
		return err
	}
	c.creds = creds
	c.session = Session{
		Server: normalizeServer(creds.Server),
		Vault:  creds.Vault,
		User:   creds.User,
	}
	if !creds.Complete() {
		c.state = StateUnauthenticated
		c.log.Debugw("skipping authentication, credentials incomplete",
			"server", creds.Server != "", "user", creds.User != "",
			"password", creds.Password != "", "vault", creds.Vault != "")
		return nil
	}

	var resp authResponse
	err = c.requestToken(ctx, authRequest{Username: creds.User, Password: creds.Password, VaultGuid: creds.Vault}, &resp)
	if err != nil {
		c.state = StateUnauthenticated
		return &AuthenticationError{User: creds.User, Vault: creds.Vault, Err: err}
	}
	if resp.Value == "" {
		c.state = StateUnauthenticated
		return &AuthenticationError{User: creds.User, Vault: creds.Vault, Err: errors.New("empty token")}
	}
	c.session.Token = resp.Value
	c.state = StateAuthenticated
	c.log.Infow("authenticated", "server", c.session.Server, "vault", creds.Vault, "user", creds.User)
	return nil
}

func (c *Client) requestToken(ctx context.Context, body authRequest, out *authResponse) error {
	raw, err := c.send(ctx, request{
		method:    http.MethodPost,
		endpoint:  authEndpoint,
		body:      body,
		anonymous: true,
	})
	if err != nil {
		return err
	}
	return decode(http.MethodPost, authEndpoint, raw, out)
}

// Logout forgets the token. The server-side token is left to expire.
func (c *Client) Logout() {
	c.session.Token = ""
	c.state = StateUnauthenticated
}
