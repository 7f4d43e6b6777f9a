package gen

import (
	"regexp"
	"slices"
	"strings"
)

var (
	ifPattern = regexp.MustCompile(
		`\$if\{([^}]+)\}` +
			`(?:(\s*then\s*\{[^}]*\})(\s*else\s*\{[^}]*\})?` +
			`|(\s*else\s*\{[^}]*\})(\s*then\s*\{[^}]*\})?)?`,
	)
	forPattern   = regexp.MustCompile(`\$for\(([^)]+)\)\s*\{([^}]*)\}`)
	substPattern = regexp.MustCompile(`\$\{([^}]*)\}`)
)

// regionKind orders regions by evaluation priority.
type regionKind int

const (
	regionIf regionKind = iota
	regionFor
	regionSubst
)

func (k regionKind) String() string {
	switch k {
	case regionIf:
		return "if"
	case regionFor:
		return "for"
	default:
		return "substitution"
	}
}

// region is a construct found in a template, spanning text[start:end].
type region struct {
	kind       regionKind
	start, end int
	text       string    // matched template text
	cond       *ParsedIf // regionIf
	spec, body string    // regionFor
	expr       string    // regionSubst
}

// parsed is a template split into the regions that must be evaluated.
// Regions are held in evaluation order: ifs, then fors, then substitutions.
type parsed struct {
	regions []region
}

// scan finds every region of text. If regions are claimed first, then for
// regions outside them, then substitutions outside both.
func scan(text string) *parsed {
	var (
		p       parsed
		claimed [][2]int
	)

	overlaps := func(loc []int) bool {
		return slices.ContainsFunc(claimed, func(c [2]int) bool {
			return loc[0] < c[1] && c[0] < loc[1]
		})
	}

	for _, m := range ifPattern.FindAllStringSubmatchIndex(text, -1) {
		cond := &ParsedIf{Condition: strings.TrimSpace(group(text, m, 1))}

		switch {
		case m[4] >= 0:
			cond.Then = clause(text, m, 2)
			cond.Else = clause(text, m, 3)
		case m[8] >= 0:
			cond.Else = clause(text, m, 4)
			cond.Then = clause(text, m, 5)
		}

		p.add(region{kind: regionIf, cond: cond}, text, m)
		claimed = append(claimed, [2]int{m[0], m[1]})
	}

	ifs := len(claimed)

	for _, m := range forPattern.FindAllStringSubmatchIndex(text, -1) {
		if overlaps(m) {
			continue
		}

		p.add(region{
			kind: regionFor,
			spec: strings.TrimSpace(group(text, m, 1)),
			body: strings.TrimSpace(group(text, m, 2)),
		}, text, m)
	}

	for _, r := range p.regions[ifs:] {
		claimed = append(claimed, [2]int{r.start, r.end})
	}

	for _, m := range substPattern.FindAllStringSubmatchIndex(text, -1) {
		if overlaps(m) {
			continue
		}

		p.add(region{kind: regionSubst, expr: strings.TrimSpace(group(text, m, 1))}, text, m)
	}

	return &p
}

func (p *parsed) add(r region, text string, m []int) {
	r.start, r.end, r.text = m[0], m[1], text[m[0]:m[1]]
	p.regions = append(p.regions, r)
}

// group returns submatch n of m, or "" if it did not participate.
func group(text string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}

	return text[m[2*n]:m[2*n+1]]
}

// clause returns the trimmed text between the braces of a then or else
// clause, or nil if the clause is absent.
func clause(text string, m []int, n int) *string {
	if m[2*n] < 0 {
		return nil
	}

	c := group(text, m, n)
	c = strings.TrimSpace(c[strings.IndexByte(c, '{')+1 : strings.LastIndexByte(c, '}')])

	return &c
}
