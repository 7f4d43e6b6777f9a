package cmd

import (
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
)

// stdinSource names standard input in a list of value files.
const stdinSource = "-"

// sourceFiles is an ordered set of open value files, each distinct file
// once. Standard input, if named, is read after every regular file.
type sourceFiles struct {
	files []sourceFile
	stdin bool
}

type sourceFile struct {
	name string
	info os.FileInfo
	*os.File
}

// openSourceFiles opens the files named in paths, in order, skipping those
// that cannot be opened. A file reached by more than one path, through a
// symlink or a relative name, is opened at its first position only. Every
// "-", and any path naming the file behind stdin, collapses into one read of
// stdin. It returns nil if nothing was opened.
func openSourceFiles(paths []string) *sourceFiles {
	var s sourceFiles

	stdin, _ := os.Stdin.Stat()

	for _, path := range paths {
		if path == stdinSource {
			s.stdin = true

			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if stdin != nil && os.SameFile(info, stdin) {
			s.stdin = true

			continue
		}

		if s.contains(info) {
			continue
		}

		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			continue
		}

		s.files = append(s.files, sourceFile{name: path, info: info, File: f})
	}

	if s.IsZero() {
		return nil
	}

	return &s
}

func (s *sourceFiles) contains(info os.FileInfo) bool {
	for _, f := range s.files {
		if os.SameFile(f.info, info) {
			return true
		}
	}

	return false
}

// IsZero reports whether s holds no sources.
func (s *sourceFiles) IsZero() bool {
	return s == nil || (len(s.files) == 0 && !s.stdin)
}

// All yields each source with the name it was given by.
func (s *sourceFiles) All() iter.Seq2[string, io.Reader] {
	return func(yield func(string, io.Reader) bool) {
		if s == nil {
			return
		}

		for _, f := range s.files {
			if !yield(f.name, f.File) {
				return
			}
		}

		if s.stdin {
			yield(stdinSource, os.Stdin)
		}
	}
}

// Close closes every regular file. Stdin stays open.
func (s *sourceFiles) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	s.files = nil

	return errors.Join(errs...)
}
