package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reControl    = regexp.MustCompile(`[\x00-\x1f\x7f]+`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reFlagName   = regexp.MustCompile(`[^a-z0-9_]+`)
)

func stripControl(s string) string {
	return reControl.ReplaceAllString(s, " ")
}

func collapseWhitespace(s string) string {
	return reWhitespace.ReplaceAllString(s, " ")
}

// SanitizeText cleans free-form user text (titles, locations, names):
// control characters removed, runs of whitespace collapsed, ends trimmed.
func SanitizeText(input string) string {
	p := Pipeline{
		stripControl,
		collapseWhitespace,
		strings.TrimSpace,
	}
	return p.Apply(input)
}

func SanitizeEmail(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		strings.ToLower,
	}
	return p.Apply(input)
}

// SanitizeFlagName normalizes a medical/requirement flag key so "Wheelchair"
// and " wheelchair " address the same flag.
func SanitizeFlagName(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		strings.ToLower,
		func(s string) string { return reWhitespace.ReplaceAllString(s, "_") },
		func(s string) string { return reFlagName.ReplaceAllString(s, "") },
	}
	return p.Apply(input)
}

// SanitizeFlagMap rebuilds a flag map with normalized keys. Colliding keys
// resolve to true if any source entry was true.
func SanitizeFlagMap(flags map[string]bool) map[string]bool {
	if flags == nil {
		return nil
	}
	out := make(map[string]bool, len(flags))
	for name, v := range flags {
		key := SanitizeFlagName(name)
		if key == "" {
			continue
		}
		out[key] = out[key] || v
	}
	return out
}
