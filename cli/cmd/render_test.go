package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/tmplgen/lang"
)

func writeTemplate(t *testing.T, path, text string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func clearEngineEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"TMPLGEN_PATH", "TMPLGEN_MAX_DEPTH"} {
		t.Setenv(key, "")

		if err := os.Unsetenv(key); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRenderRun(t *testing.T) {
	clearEngineEnv(t)

	dir := t.TempDir()
	partials := filepath.Join(dir, "partials")

	writeTemplate(t, filepath.Join(partials, "footer.txt"), "-- ${kebabCase(site)}")
	writeTemplate(t, filepath.Join(dir, "loop.txt"), `${template("loop.txt")}`)

	values := filepath.Join(dir, "values.yaml")
	if err := os.WriteFile(values, []byte("site: My Site\nitems: [a, b]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		text     string
		search   []string
		values   Values
		maxDepth int
		want     string
		wantErr  *lang.Error
	}{
		{
			name:     "substitution",
			text:     "Hello ${upperCase(arg0)}!",
			values:   Values{Arg: []string{"world"}},
			maxDepth: -1,
			want:     "Hello WORLD!",
		},
		{
			name:     "values and loop",
			text:     "$for(i = 1..items.length) {items[i]}",
			values:   Values{Files: []string{values}},
			maxDepth: -1,
			want:     "ab",
		},
		{
			name:     "include from search path",
			text:     `${site}${template("footer.txt")}`,
			search:   []string{partials},
			values:   Values{Files: []string{values}},
			maxDepth: -1,
			want:     "My Site-- my-site",
		},
		{
			name:     "include not found",
			text:     `${template("footer.txt")}`,
			values:   Values{Files: []string{values}},
			maxDepth: -1,
			wantErr:  lang.ErrTemplateNotFound,
		},
		{
			name:     "max depth",
			text:     `${template("loop.txt")}`,
			maxDepth: 2,
			wantErr:  lang.ErrMaxDepthExceeded,
		},
		{
			name:     "unknown variable",
			text:     "${missing}",
			maxDepth: -1,
			wantErr:  lang.ErrInvalidExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := writeTemplate(t, filepath.Join(dir, tt.name+".txt"), tt.text)

			var out bytes.Buffer

			r := &Render{
				Values:   tt.values,
				Engine:   Engine{MaxDepth: tt.maxDepth},
				Template: tmpl,
				stdout:   &out,
			}

			err := r.Run(WithSearchPath(t.Context(), tt.search))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %q", err, tt.wantErr.Message())
				}

				if out.Len() != 0 {
					t.Errorf("expected no output on error, got %q", out.String())
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("Run() wrote %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRenderRun_Out(t *testing.T) {
	clearEngineEnv(t)

	dir := t.TempDir()
	tmpl := writeTemplate(t, filepath.Join(dir, "page.txt"), `$if{arg0 == "x"} then {"yes"} else {"no"}`)
	dest := filepath.Join(dir, "out", "page.out")

	if err := os.Mkdir(filepath.Dir(dest), 0o755); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer

	r := &Render{
		Values:   Values{Arg: []string{"x"}},
		Engine:   Engine{MaxDepth: -1},
		Template: tmpl,
		Out:      dest,
		stdout:   &stdout,
	}

	if err := r.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "yes" {
		t.Errorf("output file = %q, want %q", data, "yes")
	}

	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}
}

func TestRenderRun_InvalidValues(t *testing.T) {
	clearEngineEnv(t)

	tmpl := writeTemplate(t, filepath.Join(t.TempDir(), "t.txt"), "x")

	r := &Render{
		Values:   Values{Set: []string{"broken"}},
		Template: tmpl,
		stdout:   &bytes.Buffer{},
	}

	if err := r.Run(t.Context()); !errors.Is(err, ErrInvalidSet) {
		t.Errorf("Run() error = %v, want invalid assignment", err)
	}
}

func TestEngineOptions_InvalidEnvironment(t *testing.T) {
	t.Setenv("TMPLGEN_MAX_DEPTH", "deep")

	var e Engine
	if _, err := e.options(t.Context()); err == nil {
		t.Error("expected an error for an invalid TMPLGEN_MAX_DEPTH")
	}
}
