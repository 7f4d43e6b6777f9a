package repl

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/ardnew/tmplgen/lang"
)

func TestCallAt(t *testing.T) {
	tests := []struct {
		s      string
		cursor int
		want   call
		wantOK bool
	}{
		{"upperCase(", 10, call{"upperCase", ""}, true},
		{"upperCase(user.na", 17, call{"upperCase", "user.na"}, true},
		{"upperCase(x)", 12, call{}, false},
		{"upperCase(x)", 11, call{"upperCase", "x"}, true},
		{"a(b(c)", 6, call{"a", "b(c)"}, true},
		{"a(b(c", 5, call{"b", "c"}, true},
		{"size > (", 8, call{}, false},
		{"größe(x", 9, call{"größe", "x"}, true},
		{"plain", 5, call{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			got, ok := callAt(tt.s, tt.cursor)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("callAt(%q, %d) = %+v, %v; want %+v, %v",
					tt.s, tt.cursor, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEnv_Signature(t *testing.T) {
	e := testEnv()

	tests := map[string]string{
		"upperCase":  "upperCase(value) string",
		"isEmpty":    "isEmpty(value) bool",
		templateFunc: "template(path) string",
		"missing":    "missing() ",
	}

	for name, want := range tests {
		if got := e.signature(name); got != want {
			t.Errorf("signature(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestEnv_Hint(t *testing.T) {
	e := testEnv()

	tests := []struct {
		name string
		c    call
		want string
	}{
		{"preview", call{"upperCase", "user.name"}, "upperCase(value) string = string ADA"},
		{"literal", call{"kebabCase", `"Hello World"`}, "kebabCase(value) string = string hello-world"},
		{"partial", call{"upperCase", "user."}, "upperCase(value) string"},
		{"no argument", call{"upperCase", ""}, "upperCase(value) string"},
		{"include", call{templateFunc, `"a.txt"`}, "template(path) string"},
		{"unknown", call{"nope", "x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansi.Strip(e.hint(t.Context(), tt.c)); got != tt.want {
				t.Errorf("hint(%+v) = %q, want %q", tt.c, got, tt.want)
			}
		})
	}
}

func TestPreview_Truncates(t *testing.T) {
	long := strings.Repeat("abcdefghijklmnopqrstuvwxyz", 2)

	if got, want := preview(lang.String(long), previewWidth),
		"string "+long[:previewWidth]+"..."; got != want {
		t.Errorf("preview = %q, want %q", got, want)
	}

	if got := preview(lang.List(lang.Int(1)), previewWidth); got != "list [1]" {
		t.Errorf("preview = %q", got)
	}
}
