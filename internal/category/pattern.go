package category

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const regexTag = "regex:"

// compiledPattern is the evaluated form of a stored pattern, compiled once
// per pattern-set load rather than per description.
type compiledPattern struct {
	categoryID   uuid.UUID
	categoryName string
	priority     int
	exclude      bool
	re           *regexp.Regexp
}

// compile turns a stored pattern into its matchable form. A pattern whose
// regular expression fails to compile is treated as "never matches" and
// dropped, never surfaced as an error.
func compile(p Pattern) (compiledPattern, bool) {
	raw := p.Pattern

	exclude := strings.HasPrefix(raw, "!")
	if exclude {
		raw = strings.TrimPrefix(raw, "!")
	}

	var expr string

	if rest, ok := strings.CutPrefix(raw, regexTag); ok {
		expr = "(?i)" + rest
	} else {
		// Bare text matches on word boundaries, not as a substring:
		// "BP" must not match inside "BPI".
		expr = `(?i)\b` + regexp.QuoteMeta(raw) + `\b`
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return compiledPattern{}, false
	}

	return compiledPattern{
		categoryID:   p.CategoryID,
		categoryName: p.CategoryName,
		priority:     p.Priority,
		exclude:      exclude,
		re:           re,
	}, true
}

// compileAll compiles a pattern set, preserving the input order. The caller
// must pass patterns sorted by (priority desc, id asc); that ordering is the
// tie-break contract of the matcher.
func compileAll(patterns []Pattern) []compiledPattern {
	compiled := make([]compiledPattern, 0, len(patterns))

	for _, p := range patterns {
		if cp, ok := compile(p); ok {
			compiled = append(compiled, cp)
		}
	}

	return compiled
}
