//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of tmplgen, embedded at build time from the
// VERSION file.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name used in help output, default config paths and
	// environment variable prefixes.
	Name = "tmplgen"
	// Description is a short summary of the project used in help output.
	Description = "Text template generator"
	// EnvPrefix prefixes every environment variable read by tmplgen.
	EnvPrefix = "TMPLGEN_"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
