package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"GoMFiles/internal/config"
	"GoMFiles/pkg/mfiles"
)

func TestDispatcher_HelpAndUnknown(t *testing.T) {
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{}) })
	if !strings.Contains(out, "GoMFiles CLI") {
		t.Fatalf("global help expected")
	}
	for _, name := range []string{"login", "upload", "download", "search", "checkout", "history"} {
		if !strings.Contains(out, name) {
			t.Fatalf("command %q missing from help", name)
		}
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help"}) })
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("usage expected")
	}

	out = withStdoutCapture(t, func() {
		if code := Dispatch(context.Background(), &config.Config{}, []string{"help", "upload"}); code != 0 {
			t.Fatalf("expected 0 for help upload, got %d", code)
		}
	})
	if !strings.Contains(out, "Usage: upload <path>") {
		t.Fatalf("upload usage expected, got: %s", out)
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help", "nope"}) })
	if !strings.Contains(out, "Unknown command") {
		t.Fatalf("unknown command message expected")
	}

	withStdoutCapture(t, func() {
		if code := Dispatch(context.Background(), &config.Config{}, []string{"no-such"}); code != 2 {
			t.Fatalf("expected 2 for unknown command, got %d", code)
		}
	})
}

func TestDispatcher_RunPaths(t *testing.T) {
	RegisterCmd(fakeCmd{name: "x", usage: "x", run: func(context.Context, *config.Config, []string) error { return nil }})
	if code := Dispatch(context.Background(), &config.Config{}, []string{"X"}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	RegisterCmd(fakeCmd{name: "u", usage: "u <arg>", run: func(context.Context, *config.Config, []string) error {
		return fmt.Errorf("%w: missing arg", ErrUsage)
	}})
	out := withStdoutCapture(t, func() {
		if code := Dispatch(context.Background(), &config.Config{}, []string{"u"}); code != 2 {
			t.Fatalf("expected exit 2 for wrapped ErrUsage, got %d", code)
		}
	})
	if !strings.Contains(out, "Usage: u <arg>") {
		t.Fatalf("usage text expected")
	}

	RegisterCmd(fakeCmd{name: "e", usage: "e", run: func(context.Context, *config.Config, []string) error { return fmt.Errorf("boom") }})
	out = withStdoutCapture(t, func() {
		if code := Dispatch(context.Background(), &config.Config{}, []string{"e"}); code != 1 {
			t.Fatalf("expected exit 1, got %d", code)
		}
	})
	if !strings.Contains(out, "e error: boom") {
		t.Fatalf("error line expected, got: %s", out)
	}

	RegisterCmd(fakeCmd{name: "t", usage: "t", run: func(context.Context, *config.Config, []string) error {
		return &mfiles.TransportError{Method: http.MethodGet, URL: "http://x/REST/objects", StatusCode: 403, Body: `{"Message":"Access denied"}`}
	}})
	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"t"}) })
	if !strings.Contains(out, "t error: server returned 403: Access denied") {
		t.Fatalf("server message expected, got: %s", out)
	}
}

func TestParseProperties(t *testing.T) {
	props, err := parseProperties([]string{"Document Type=Invoice", "Pages=3=4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(props) != 2 || props[0].Name != "Document Type" || props[0].Value != "Invoice" || props[1].Value != "3=4" {
		t.Fatalf("unexpected props: %+v", props)
	}
	for _, bad := range []string{"NoEquals", "=value"} {
		if _, err := parseProperties([]string{bad}); err == nil {
			t.Fatalf("expected usage error for %q", bad)
		}
	}
}

func TestCommands_UsageErrors(t *testing.T) {
	cfg := &config.Config{}
	cases := [][]string{
		{"login", "extra"},
		{"upload"},
		{"download"},
		{"checkout", "0"},
		{"checkin", "0", "1"},
		{"checkout", "0", "abc"},
		{"delete", "0"},
		{"destroy"},
		{"create", "name", "0"},
		{"types"},
		{"types", "widgets"},
		{"resolve", "class"},
		{"history", "many"},
	}
	for _, args := range cases {
		code, out := run(t, cfg, args...)
		if code != 2 || !strings.Contains(out, "Usage: ") {
			t.Fatalf("%v: expected usage (2), got %d: %s", args, code, out)
		}
	}
}
