package repl

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

const (
	baseHistory = "history.utf8"

	// maxHistory is the number of entries kept in the history file.
	maxHistory = 1000

	historyMode os.FileMode = 0o600
)

// Line prefixes recording the mode of each history entry.
const (
	evalPrefix = "E:"
	ctrlPrefix = "C:"
)

// HistoryEntry is one submitted line and the mode it was submitted in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// MarshalText encodes e as a line of the history file.
func (e HistoryEntry) MarshalText() ([]byte, error) {
	prefix := evalPrefix
	if e.Mode == modeCtrl {
		prefix = ctrlPrefix
	}

	return []byte(prefix + e.Line), nil
}

// UnmarshalText decodes a line of the history file. Lines without a mode
// prefix are expressions.
func (e *HistoryEntry) UnmarshalText(text []byte) error {
	line := string(text)

	if s, ok := strings.CutPrefix(line, ctrlPrefix); ok {
		*e = HistoryEntry{Line: s, Mode: modeCtrl}

		return nil
	}

	s, _ := strings.CutPrefix(line, evalPrefix)
	*e = HistoryEntry{Line: s, Mode: modeEval}

	return nil
}

// History is the persistent list of submitted lines, oldest first. A line is
// kept once per mode; submitting it again moves it to the end.
type History struct {
	mu      sync.RWMutex
	path    string
	entries []HistoryEntry
}

// NewHistory returns an empty history persisted at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those of the history file. A missing file
// is an empty history.
func (h *History) Load() error {
	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	var entries []HistoryEntry

	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var e HistoryEntry
		if err := e.UnmarshalText([]byte(line)); err != nil {
			return err
		}

		entries = append(entries, e)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = newest(entries)

	return nil
}

// Append records line as the newest entry of mode and persists the change.
// Blank lines are ignored.
func (h *History) Append(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	e := HistoryEntry{Line: line, Mode: mode}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := slices.Index(h.entries, e)

	switch {
	case i >= 0 && i == len(h.entries)-1:
		return nil

	case i >= 0:
		h.entries = append(slices.Delete(h.entries, i, i+1), e)

		return h.save()
	}

	h.entries = append(h.entries, e)
	if len(h.entries) > maxHistory {
		h.entries = newest(h.entries)

		return h.save()
	}

	return h.appendFile(e)
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Find returns the first entry after index from, moving by step, for which
// match reports true. A nil match accepts every entry.
func (h *History) Find(from, step int, match func(HistoryEntry) bool) (int, HistoryEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := from + step; i >= 0 && i < len(h.entries); i += step {
		if match == nil || match(h.entries[i]) {
			return i, h.entries[i], true
		}
	}

	return 0, HistoryEntry{}, false
}

// newest returns at most the last maxHistory entries.
func newest(entries []HistoryEntry) []HistoryEntry {
	return slices.Clone(entries[max(0, len(entries)-maxHistory):])
}

// save rewrites the history file. Must be called with h.mu held.
func (h *History) save() error {
	var b strings.Builder

	for _, e := range h.entries {
		text, _ := e.MarshalText()
		b.Write(text)
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), historyMode)
}

// appendFile adds e to the end of the history file. Must be called with h.mu
// held.
func (h *History) appendFile(e HistoryEntry) error {
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, historyMode)
	if err != nil {
		return err
	}

	text, _ := e.MarshalText()

	_, err = f.Write(append(text, '\n'))
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return err
}
