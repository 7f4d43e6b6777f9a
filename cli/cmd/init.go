package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmplgen/log"
	"github.com/ardnew/tmplgen/profile"
)

// Init writes the configuration file from the flags in effect.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// defaultConfigIndent is the indentation of generated YAML documents.
const defaultConfigIndent = 2

// skipFlags are prefixes of flags never written to the configuration file.
var skipFlags = []string{"help", profile.Tag}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Errorf("no command line")
	}

	path := ktx.Model.Vars()[ConfigIdentifier]
	fail := func(err error) error {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	data, err := yaml.MarshalContext(ctx, flagValues(ktx), yaml.Indent(defaultConfigIndent))
	if err != nil {
		return fail(ErrYAMLMarshal.Wrap(err))
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if i.Force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flag, outputMode)
	if errors.Is(err, fs.ErrExist) {
		return fail(ErrFileExists)
	}

	if err != nil {
		return fail(err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()

		return fail(err)
	}

	if err := f.Close(); err != nil {
		return fail(err)
	}

	log.DebugContext(ctx, "wrote configuration file",
		slog.String("path", path),
		slog.Bool("force", i.Force),
	)

	return nil
}

// flagValues returns the set value of every visible flag in the order the
// flags are declared.
func flagValues(ktx *kong.Context) yaml.MapSlice {
	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || hasAnyPrefix(flag.Name, skipFlags) {
			continue
		}

		if v := ktx.FlagValue(flag); isSet(v) {
			values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return values
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}

// isSet reports whether v is worth writing. Empty strings, lists and maps
// are left out so their defaults apply.
func isSet(v any) bool {
	if v == nil {
		return false
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return rv.Len() > 0
	}

	return true
}
