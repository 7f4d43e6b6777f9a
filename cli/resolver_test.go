package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	v, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", name, err)
	}

	return v
}

func TestResolve_FlatMapping(t *testing.T) {
	src := `
log-level: debug
log_format: text
log-pretty: false
max-depth: 8
ratio: 0.5
path:
  - a
  - b
`

	r, err := resolve(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"log-pretty", false},
		{"max-depth", "8"},
		{"ratio", "0.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, r, tt.flag); got != tt.want {
				t.Errorf("expected %s=%v (%T), got %v (%T)",
					tt.flag, tt.want, tt.want, got, got)
			}
		})
	}

	path, ok := resolveFlag(t, r, "path").([]any)
	if !ok || len(path) != 2 || path[0] != "a" || path[1] != "b" {
		t.Errorf("unexpected path value %#v", resolveFlag(t, r, "path"))
	}
}

func TestResolve_EmptyFile(t *testing.T) {
	r, err := resolve(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if v := resolveFlag(t, r, "log-level"); v != nil {
		t.Errorf("expected no value, got %v", v)
	}

	if err := r.Validate(nil); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestResolve_InvalidYAML(t *testing.T) {
	_, err := resolve(strings.NewReader("log-level: [unterminated"))
	if !errors.Is(err, ErrConfigFile) {
		t.Fatalf("expected ErrConfigFile, got %v", err)
	}
}

func TestResolve_ReadError(t *testing.T) {
	_, err := resolve(&errorReader{err: bytes.ErrTooLarge})
	if !errors.Is(err, ErrConfigFile) {
		t.Fatalf("expected ErrConfigFile, got %v", err)
	}

	if !errors.Is(err, bytes.ErrTooLarge) {
		t.Errorf("expected read error to be wrapped, got %v", err)
	}
}

// errorReader is a reader that always returns an error.
type errorReader struct {
	err error
}

func (e *errorReader) Read([]byte) (int, error) {
	return 0, e.err
}
