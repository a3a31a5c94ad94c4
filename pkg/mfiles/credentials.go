package mfiles

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"golang.org/x/term"
)

// Credentials is the quadruple needed to log in.
type Credentials struct {
	Server   string
	User     string
	Password string
	Vault    string
}

// Complete reports whether every field is set.
func (c Credentials) Complete() bool {
	return c.Server != "" && c.User != "" && c.Password != "" && c.Vault != ""
}

// fill copies fields of o into the empty fields of c.
func (c Credentials) fill(o Credentials) Credentials {
	if c.Server == "" {
		c.Server = o.Server
	}
	if c.User == "" {
		c.User = o.User
	}
	if c.Password == "" {
		c.Password = o.Password
	}
	if c.Vault == "" {
		c.Vault = o.Vault
	}
	return c
}

// CredentialProvider supplies values for fields still missing in have.
// Providers are consulted in order; a field set by an earlier provider is
// never overwritten by a later one.
type CredentialProvider interface {
	Credentials(ctx context.Context, have Credentials) (Credentials, error)
}

// CredentialProviderFunc adapts a function to CredentialProvider.
type CredentialProviderFunc func(ctx context.Context, have Credentials) (Credentials, error)

func (f CredentialProviderFunc) Credentials(ctx context.Context, have Credentials) (Credentials, error) {
	return f(ctx, have)
}

// StaticProvider always returns the same credentials.
type StaticProvider Credentials

func (p StaticProvider) Credentials(context.Context, Credentials) (Credentials, error) {
	return Credentials(p), nil
}

type envCredentials struct {
	Server   string `env:"MFILES_URL"`
	User     string `env:"MFILES_USER"`
	Password string `env:"MFILES_PASS"`
	Vault    string `env:"MFILES_VAULT"`
}

// EnvProvider reads MFILES_URL, MFILES_USER, MFILES_PASS and MFILES_VAULT.
type EnvProvider struct{}

func (EnvProvider) Credentials(context.Context, Credentials) (Credentials, error) {
	var e envCredentials
	if err := env.Parse(&e); err != nil {
		return Credentials{}, fmt.Errorf("parse credential environment: %w", err)
	}
	return Credentials(e), nil
}

var errNoTerminal = errors.New("no terminal available for interactive prompt")

// PromptProvider asks for the user name and password. Server and vault have
// no interactive fallback, so nothing is asked until both are known.
type PromptProvider struct {
	ReadLine   func(prompt string) (string, error)
	ReadSecret func(prompt string) (string, error)
}

// NewTerminalPrompt prompts on out and reads from in. When in is not a
// terminal the provider supplies nothing.
func NewTerminalPrompt(in *os.File, out io.Writer) PromptProvider {
	var reader *bufio.Reader
	return PromptProvider{
		ReadLine: func(prompt string) (string, error) {
			if !term.IsTerminal(int(in.Fd())) {
				return "", errNoTerminal
			}
			if reader == nil {
				reader = bufio.NewReader(in)
			}
			fmt.Fprint(out, prompt)
			line, err := reader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			return strings.TrimSpace(line), nil
		},
		ReadSecret: func(prompt string) (string, error) {
			fd := int(in.Fd())
			if !term.IsTerminal(fd) {
				return "", errNoTerminal
			}
			fmt.Fprint(out, prompt)
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("read password: %w", err)
			}
			return string(b), nil
		},
	}
}

func (p PromptProvider) Credentials(ctx context.Context, have Credentials) (Credentials, error) {
	var got Credentials
	if have.Server == "" || have.Vault == "" {
		return got, nil
	}
	if have.User == "" && p.ReadLine != nil {
		user, err := p.ReadLine("M-Files user: ")
		if errors.Is(err, errNoTerminal) {
			return got, nil
		}
		if err != nil {
			return got, err
		}
		got.User = user
	}
	if err := ctx.Err(); err != nil {
		return got, err
	}
	if have.Password == "" && p.ReadSecret != nil {
		pass, err := p.ReadSecret("M-Files password: ")
		if errors.Is(err, errNoTerminal) {
			return got, nil
		}
		if err != nil {
			return got, err
		}
		got.Password = pass
	}
	return got, nil
}

// resolveCredentials walks the providers until the quadruple is complete.
func resolveCredentials(ctx context.Context, have Credentials, providers []CredentialProvider) (Credentials, error) {
	for _, p := range providers {
		if have.Complete() {
			break
		}
		got, err := p.Credentials(ctx, have)
		if err != nil {
			return have, err
		}
		have = have.fill(got)
	}
	return have, nil
}
