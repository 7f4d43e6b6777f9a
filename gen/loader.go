package gen

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ardnew/mung"
	"github.com/klauspost/readahead"

	"github.com/ardnew/tmplgen/lang"
)

// Loader locates and reads template files. Files are cached until their size
// or modification time changes. A Loader is safe for concurrent use.
type Loader struct {
	search []string

	mu    sync.Mutex
	files map[string]file
	order []string
}

type file struct {
	text    string
	size    int64
	modTime time.Time
}

// NewLoader returns a loader that looks up relative template names in the
// given directories after the directory of the including template.
func NewLoader(search ...string) *Loader {
	return &Loader{
		search: slices.Clone(search),
		files:  make(map[string]file),
	}
}

// SearchPath returns the directories of prefix followed by those of the
// list, which is separated by [os.PathListSeparator]. Entries that are not
// directories are dropped.
func SearchPath(prefix []string, list string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(isDir),
	).String()

	return slices.DeleteFunc(
		strings.Split(joined, string(os.PathListSeparator)),
		func(s string) bool { return s == "" || !isDir(s) },
	)
}

// Search returns the loader's search directories.
func (l *Loader) Search() []string { return slices.Clone(l.search) }

// Find returns the path of the template name. An absolute name is used as is.
// A relative name is tried in base, then in each search directory, and then
// relative to the working directory.
func (l *Loader) Find(base, name string) (string, error) {
	notFound := lang.ErrTemplateNotFound.Errorf("Template file %s not found", name).
		With(slog.String("path", name))

	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}

		return "", notFound
	}

	var dirs []string
	if base != "" {
		dirs = append(dirs, base)
	}

	dirs = append(dirs, l.search...)

	for _, dir := range dirs {
		if path := filepath.Join(dir, name); isFile(path) {
			return path, nil
		}
	}

	if isFile(name) {
		return name, nil
	}

	return "", notFound
}

// Read returns the contents of the file at path.
func (l *Loader) Read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", readError(path, err)
	}

	l.mu.Lock()
	cached, ok := l.files[path]
	l.mu.Unlock()

	if ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.text, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", readError(path, err)
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", readError(path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, seen := l.files[path]; !seen {
		l.order = append(l.order, path)
	}

	l.files[path] = file{
		text:    string(data),
		size:    info.Size(),
		modTime: info.ModTime(),
	}

	return string(data), nil
}

// Files returns the paths read so far, in the order first read.
func (l *Loader) Files() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.order)
}

func readError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return lang.ErrTemplateNotFound.Errorf("Template file %s not found", path).
			With(slog.String("path", path)).
			Wrap(err)
	}

	return lang.WrapError(err).With(slog.String("path", path))
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
