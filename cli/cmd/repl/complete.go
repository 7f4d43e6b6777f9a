package repl

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tmplgen/lang"
)

// boundaries are the bytes that end the word being completed.
const boundaries = " \t(){}[],\"'+-*/<>=!|&$"

// sizeFields are the fields every list, map and string has.
var sizeFields = []string{"length", "size"}

// wordAt returns the bounds of the path segment under the cursor and the
// path of its parent. In "upperCase(user.na|" the segment is "na" and its
// parent path is "user".
func wordAt(s string, cursor int) (start, end int, parent string) {
	word := strings.LastIndexAny(s[:cursor], boundaries) + 1

	start = word
	if i := strings.LastIndexByte(s[word:cursor], '.'); i >= 0 {
		start = word + i + 1
		parent = s[word : start-1]
	}

	end = len(s)
	if i := strings.IndexAny(s[cursor:], boundaries+"."); i >= 0 {
		end = cursor + i
	}

	return start, end, parent
}

// suggestions are the candidates for replacing one segment of a line.
type suggestions struct {
	matches  fuzzy.Matches
	line     string // line the candidates were computed for
	start    int    // replaced byte range of line
	end      int
	selected int // selected match, -1 before the first tab
}

func noSuggestions() suggestions { return suggestions{selected: -1} }

func (s suggestions) empty() bool { return len(s.matches) == 0 }

func (s suggestions) cycling() bool { return s.selected >= 0 }

// apply returns the line with match i in place of the segment, and the byte
// offset just past it.
func (s suggestions) apply(i int) (string, int) {
	c := s.matches[i].Str

	return s.line[:s.start] + c + s.line[s.end:], s.start + len(c)
}

// cycle selects the next (step > 0) or previous (step < 0) candidate. A lone
// candidate is accepted immediately.
func (m model) cycle(step int) model {
	s := m.sugg
	if s.empty() {
		return m
	}

	if len(s.matches) == 1 {
		line, at := s.apply(0)
		m.setInputCursor(line, at)
		m.sugg = noSuggestions()

		return m
	}

	n := len(s.matches)

	switch {
	case !s.cycling() && step < 0:
		s.selected = n - 1
	case !s.cycling():
		s.selected = 0
	default:
		s.selected = ((s.selected+step)%n + n) % n
	}

	line, at := s.apply(s.selected)
	m.setInputCursor(line, at)
	m.sugg = s

	return m
}

// cancelCompletion restores the line as it was before cycling began.
func (m model) cancelCompletion() model {
	m.setInputCursor(m.sugg.line, m.sugg.end)
	m.sugg = noSuggestions()

	return m
}

// refreshCompletion recomputes the candidates for the segment under the
// cursor. A selected candidate is kept as typed.
func (m model) refreshCompletion() model {
	line, cursor := m.input.Value(), m.cursor()

	m.sugg = noSuggestions()

	start, end, parent := wordAt(line, cursor)
	if m.mode == modeCtrl {
		if strings.TrimSpace(line[:start]) != "" {
			return m
		}

		parent = ""
	}

	prefix := line[start:cursor]
	if prefix == "" && parent == "" {
		return m
	}

	var candidates []string
	if m.mode == modeCtrl {
		candidates = commandNames()
	} else {
		candidates = m.env.candidates(m.ctx(), parent)
	}

	matches := match(prefix, candidates)
	if len(matches) == 1 && matches[0].Str == line[start:end] {
		return m
	}

	m.sugg = suggestions{
		matches:  matches,
		line:     line,
		start:    start,
		end:      end,
		selected: -1,
	}

	return m
}

// match ranks candidates by fuzzy similarity to prefix. Every candidate
// matches the empty prefix.
func match(prefix string, candidates []string) fuzzy.Matches {
	if prefix != "" {
		return fuzzy.Find(prefix, candidates)
	}

	all := make(fuzzy.Matches, len(candidates))
	for i, c := range candidates {
		all[i] = fuzzy.Match{Str: c, Index: i}
	}

	return all
}

// candidates returns the names that may follow parent and a dot, or the
// names in scope and the function names if parent is empty.
func (e env) candidates(ctx context.Context, parent string) []string {
	var names []string

	if parent == "" {
		names = append(names, e.scope.Keys()...)
		for name := range e.gen.Names() {
			names = append(names, name)
		}

		names = append(names, templateFunc)
	} else {
		v, err := e.gen.Resolve(ctx, e.scope, parent)
		if err != nil {
			return nil
		}

		switch v.Kind() {
		case lang.KindMap:
			fields, _ := v.AsMap()
			for name := range fields {
				names = append(names, name)
			}

			fallthrough

		case lang.KindList, lang.KindString:
			names = append(names, sizeFields...)
		}
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// render formats the candidates as a single line no wider than width,
// scrolled to keep the selected one visible.
func (s suggestions) render(width int) string {
	const (
		sep  = "  "
		more = "…"
	)

	moreWidth := lipgloss.Width(more)

	first := 0
	if s.cycling() {
		avail, used := width-2*moreWidth, 0
		for first = s.selected; first >= 0; first-- {
			used += lipgloss.Width(s.matches[first].Str) + len(sep)
			if used > avail {
				break
			}
		}

		first = min(first+1, s.selected)
	}

	var b strings.Builder

	if first > 0 {
		b.WriteString(hintStyle.Render(more))
	}

	used := lipgloss.Width(b.String())

	for i := first; i < len(s.matches); i++ {
		w := lipgloss.Width(s.matches[i].Str) + len(sep)
		if used+w > width-moreWidth && i > first {
			b.WriteString(hintStyle.Render(more))

			break
		}

		b.WriteString(renderMatch(s.matches[i], i == s.selected))
		b.WriteString(sep)

		used += w
	}

	return strings.TrimRight(b.String(), " ")
}

// renderMatch highlights the characters of m that matched the prefix.
func renderMatch(m fuzzy.Match, selected bool) string {
	plain, bold := candidateStyle, matchedStyle
	if selected {
		plain, bold = selectedStyle, selMatchStyle
	}

	var b strings.Builder

	for i, r := range m.Str {
		if slices.Contains(m.MatchedIndexes, i) {
			b.WriteString(bold.Render(string(r)))
		} else {
			b.WriteString(plain.Render(string(r)))
		}
	}

	return b.String()
}
