// Package ignore parses ignore-rule text and answers whether a pathname is
// excluded from capture. Rules follow the familiar form: one glob pattern
// per line, # comments, blank lines skipped, and a leading ! negating the
// pattern. The last matching rule wins.
package ignore

import (
	"bufio"
	"path/filepath"
	"strings"

	"go.trai.ch/stencil/internal/core/ports"
)

var _ ports.IgnoreRules = (*Rules)(nil)

type rule struct {
	pattern string
	negate  bool
}

// Rules is a parsed, ordered rule set.
type Rules struct {
	rules []rule
}

// Parse builds a rule set from raw rule text. Empty text yields a rule set
// that ignores nothing.
func Parse(text string) *Rules {
	r := &Rules{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negate := false
		if strings.HasPrefix(line, "!") {
			negate = true
			line = strings.TrimSpace(line[1:])
		}
		r.rules = append(r.rules, rule{pattern: line, negate: negate})
	}
	return r
}

// Ignored reports whether the pathname matches the rule set.
func (r *Rules) Ignored(pathname string) bool {
	clean := filepath.ToSlash(filepath.Clean(pathname))
	ignored := false
	for _, rule := range r.rules {
		if matchPattern(rule.pattern, clean) {
			ignored = !rule.negate
		}
	}
	return ignored
}

// matchPattern handles *, ? and ** segments.
func matchPattern(pattern, path string) bool {
	pattern = filepath.ToSlash(pattern)
	// A pattern without a slash matches the basename anywhere in the tree.
	if !strings.Contains(pattern, "/") {
		return matchSegments([]string{"**", pattern}, strings.Split(path, "/"))
	}
	pattern = strings.TrimPrefix(pattern, "/")
	path = strings.TrimPrefix(path, "/")
	return matchSegments(strings.Split(pattern, "/"), strings.Split(path, "/"))
}

// matchSegments matches pattern segments recursively.
func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			if len(pats) == 0 {
				return true
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}

		ok, _ := filepath.Match(p, parts[0])
		if !ok {
			return false
		}

		parts = parts[1:]
	}

	return len(parts) == 0
}
