package character

import (
	"strings"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/match"
)

func nameOf(c *Character) string { return c.Name }

// FindByName resolves an exact name or a unique prefix of one.
func FindByName(chars []*Character, name string) (*Character, error) {
	return match.ExactOrUniquePrefix(name, chars, nameOf)
}

// FindByUser returns the only active character owned by user.
func FindByUser(chars []*Character, user string) (*Character, error) {
	var owned []*Character
	for _, c := range chars {
		if c.Active && match.Normalize(c.User) == match.Normalize(user) {
			owned = append(owned, c)
		}
	}
	switch len(owned) {
	case 1:
		return owned[0], nil
	case 0:
		return nil, errors.NotFoundf("%s has no active character; name one or use the play command", user)
	default:
		names := make([]string, len(owned))
		for i, c := range owned {
			names[i] = c.Name
		}
		return nil, errors.AmbiguousMatch(user, names)
	}
}

// Find resolves command tokens to a character. Tokens are joined into a
// name; with no name the user's active character is used.
func Find(chars []*Character, tokens []string, user string) (*Character, error) {
	name := strings.Join(tokens, " ")
	if strings.TrimSpace(name) == "" {
		return FindByUser(chars, user)
	}
	return FindByName(chars, name)
}

// OwnedBy lists every character of user.
func OwnedBy(chars []*Character, user string) []*Character {
	var out []*Character
	for _, c := range chars {
		if match.Normalize(c.User) == match.Normalize(user) {
			out = append(out, c)
		}
	}
	return out
}
