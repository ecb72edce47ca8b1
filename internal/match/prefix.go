// Package match resolves user supplied text and numbers against candidate
// lists: unique prefix lookups for names and bound lookups for table rolls.
package match

import (
	"regexp"
	"strings"

	"github.com/mhtoin/initbot/internal/errors"
)

var intPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// IsInt reports whether s is a canonical base 10 integer.
func IsInt(s string) bool {
	return intPattern.MatchString(s)
}

// Normalize lowercases and trims s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UniquePrefix returns the only candidate whose key starts with query.
// Comparison is case-insensitive and ignores surrounding whitespace.
func UniquePrefix[T any](query string, candidates []T, key func(T) string) (T, error) {
	var zero T
	q := Normalize(query)

	var found []T
	for _, c := range candidates {
		if strings.HasPrefix(Normalize(key(c)), q) {
			found = append(found, c)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return zero, errors.NoMatch(query, keys(candidates, key))
	default:
		return zero, errors.AmbiguousMatch(query, keys(found, key))
	}
}

// ExactOrUniquePrefix prefers a single candidate whose key equals query
// and otherwise falls back to UniquePrefix.
func ExactOrUniquePrefix[T any](query string, candidates []T, key func(T) string) (T, error) {
	q := Normalize(query)

	var exact []T
	for _, c := range candidates {
		if Normalize(key(c)) == q {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}

	return UniquePrefix(query, candidates, key)
}

// String resolves query against plain strings.
func String(query string, candidates []string) (string, error) {
	return ExactOrUniquePrefix(query, candidates, identity)
}

func identity(s string) string { return s }

func keys[T any](candidates []T, key func(T) string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, key(c))
	}
	return out
}
