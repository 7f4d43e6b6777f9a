package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/tmplgen/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

const dirMode os.FileMode = 0o700

// debugBinary matches the default output name of the dlv debugger.
var debugBinary = regexp.MustCompile(`^__debug_bin\d*$`)

// baseName returns the name identifying the application's directories for
// the executable at path: its base name without extension or leading dots.
// Debugger builds and names that reduce to nothing use [pkg.Name].
func baseName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimLeft(name, ".")
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if name == "" || name == "/" || debugBinary.MatchString(name) {
		return pkg.Name
	}

	return name
}

// userDir returns the per-user directory reported by primary, falling back
// to home/rel and then to the working directory.
func userDir(primary func() (string, error), rel string) string {
	if dir, err := primary(); err == nil {
		return dir
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, rel)
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}

type dirs struct {
	config string
	cache  string
}

// appDirs returns the configuration and cache directories of the running
// executable.
var appDirs = sync.OnceValue(func() dirs {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	name := baseName(exe)

	return dirs{
		config: filepath.Join(userDir(os.UserConfigDir, ".config"), name),
		cache:  filepath.Join(userDir(os.UserCacheDir, ".cache"), name),
	}
})

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{appDirs().config}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	d := appDirs()

	for _, dir := range []string{d.config, d.cache} {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return err
		}
	}

	return nil
}
