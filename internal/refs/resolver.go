// Package refs resolves human-entered names (category, payment method,
// person) to stable reference IDs, with tiered fallback matching and a safe
// default. Resolution never fails: a miss is signaled only by the sentinel
// default ID, and the match tier lets callers decide whether to treat that
// as an error.
package refs

import (
	"strings"

	"github.com/budgie-dev/budgie/internal/model"
)

// MatchTier identifies which matching tier produced a resolution.
type MatchTier int

const (
	// MatchDefault means the name was empty and the default was returned.
	MatchDefault MatchTier = iota
	// MatchExact is a case-sensitive, space-preserving match.
	MatchExact
	// MatchCaseInsensitive is a case-insensitive match.
	MatchCaseInsensitive
	// MatchNoSpace matches ignoring all whitespace, case-insensitively.
	MatchNoSpace
	// MatchNone means no tier matched and the default was returned.
	MatchNone
)

func (t MatchTier) String() string {
	switch t {
	case MatchDefault:
		return "default"
	case MatchExact:
		return "exact"
	case MatchCaseInsensitive:
		return "case-insensitive"
	case MatchNoSpace:
		return "no-space"
	case MatchNone:
		return "none"
	}
	return "unknown"
}

// Options controls a resolution.
type Options struct {
	ActiveOnly bool
	DefaultID  int // 0 means 1
}

// Resolve matches name against rows, first match wins:
// empty name -> default; exact; case-insensitive; whitespace-insensitive;
// miss -> default. Inactive rows are skipped when ActiveOnly is set.
func Resolve(rows []model.Reference, name string, opts Options) (int, MatchTier) {
	defaultID := opts.DefaultID
	if defaultID == 0 {
		defaultID = 1
	}

	if strings.TrimSpace(name) == "" {
		return defaultID, MatchDefault
	}

	candidates := rows
	if opts.ActiveOnly {
		candidates = candidates[:0:0]
		for _, r := range rows {
			if r.Active {
				candidates = append(candidates, r)
			}
		}
	}

	for _, r := range candidates {
		if r.Name == name {
			return r.ID, MatchExact
		}
	}

	lower := strings.ToLower(name)
	for _, r := range candidates {
		if strings.ToLower(r.Name) == lower {
			return r.ID, MatchCaseInsensitive
		}
	}

	squashed := squash(name)
	for _, r := range candidates {
		if squash(r.Name) == squashed {
			return r.ID, MatchNoSpace
		}
	}

	return defaultID, MatchNone
}

// squash lowercases and removes all whitespace.
func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
