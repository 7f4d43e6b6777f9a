package gen

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ardnew/tmplgen/lang"
)

func writeFile(t *testing.T, path, text string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoader_Find(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base")
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")

	writeFile(t, filepath.Join(base, "local.txt"), "local")
	writeFile(t, filepath.Join(first, "shared.txt"), "first")
	writeFile(t, filepath.Join(second, "shared.txt"), "second")
	writeFile(t, filepath.Join(second, "only.txt"), "second")
	writeFile(t, filepath.Join(first, "local.txt", "x"), "a directory named local.txt")

	l := NewLoader(first, second)

	tests := []struct {
		name string
		want string
	}{
		{"local.txt", filepath.Join(base, "local.txt")},
		{"shared.txt", filepath.Join(first, "shared.txt")},
		{"only.txt", filepath.Join(second, "only.txt")},
		{filepath.Join(second, "only.txt"), filepath.Join(second, "only.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Find(base, tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	_, err := l.Find(base, "missing.txt")
	if !errors.Is(err, lang.ErrTemplateNotFound) {
		t.Fatalf("expected template not found, got %v", err)
	}

	if err.Error() != "Template file missing.txt not found" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if _, err := l.Find(base, filepath.Join(dir, "missing.txt")); !errors.Is(err, lang.ErrTemplateNotFound) {
		t.Errorf("expected absolute miss to fail, got %v", err)
	}
}

func TestLoader_ReadCachesUntilChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.txt")
	writeFile(t, path, "one")

	l := NewLoader()

	got, err := l.Read(path)
	if err != nil || got != "one" {
		t.Fatalf("expected \"one\", got %q, %v", got, err)
	}

	writeFile(t, path, "three")

	// Force a distinct modification time on coarse-grained filesystems.
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	got, err = l.Read(path)
	if err != nil || got != "three" {
		t.Fatalf("expected \"three\" after change, got %q, %v", got, err)
	}

	if files := l.Files(); !slices.Equal(files, []string{path}) {
		t.Errorf("expected one file recorded, got %v", files)
	}
}

func TestLoader_ReadMissing(t *testing.T) {
	_, err := NewLoader().Read(filepath.Join(t.TempDir(), "none.txt"))
	if !errors.Is(err, lang.ErrTemplateNotFound) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-found error wrapping os.ErrNotExist, got %v", err)
	}
}

func TestLoader_ReadLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.txt")
	text := strings.Repeat("${x}\n", 1<<16)
	writeFile(t, path, text)

	got, err := NewLoader().Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != text {
		t.Errorf("expected %d bytes, got %d", len(text), len(got))
	}
}

func TestSearchPath_KeepsDirectories(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	file := filepath.Join(dir, "file.txt")

	writeFile(t, filepath.Join(a, "x.txt"), "")
	writeFile(t, filepath.Join(b, "x.txt"), "")
	writeFile(t, file, "")

	list := strings.Join([]string{b, file, filepath.Join(dir, "missing")}, string(os.PathListSeparator))

	got := SearchPath([]string{a}, list)

	for _, want := range []string{a, b} {
		if !slices.Contains(got, want) {
			t.Errorf("expected %q in %v", want, got)
		}
	}

	for _, bad := range []string{file, filepath.Join(dir, "missing"), ""} {
		if slices.Contains(got, bad) {
			t.Errorf("expected %q to be dropped from %v", bad, got)
		}
	}
}
