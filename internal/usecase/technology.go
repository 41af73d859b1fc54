package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minTechnologyName = 2
	maxTechnologyName = 50
)

// CanonicalTechnologyName trims name, collapses inner whitespace and title-cases it, so
// "python ", "PYTHON" and "Python" resolve to the same technology.
func CanonicalTechnologyName(name string) (string, error) {
	collapsed := strings.Join(strings.Fields(name), " ")
	if n := utf8.RuneCountInString(collapsed); n < minTechnologyName || n > maxTechnologyName {
		return "", fmt.Errorf("technology name %q must be %d-%d characters", collapsed, minTechnologyName, maxTechnologyName)
	}
	// cases.Caser is stateful, so build one per call
	return cases.Title(language.Und).String(collapsed), nil
}

// canonicalTechnologyNames canonicalises and deduplicates names, keeping first-seen order.
// Invalid entries are reported by their position in names.
func canonicalTechnologyNames(names []string) ([]string, map[string]string) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	var invalid map[string]string

	for i, raw := range names {
		name, err := CanonicalTechnologyName(raw)
		if err != nil {
			if invalid == nil {
				invalid = map[string]string{}
			}
			invalid[fmt.Sprintf("technology[%d]", i)] = fmt.Sprintf("must be %d-%d characters", minTechnologyName, maxTechnologyName)
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, invalid
}
