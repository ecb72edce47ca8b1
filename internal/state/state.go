// Package state defines the persistence boundary of the bot. Backends live
// in subpackages and are selected by a source URI through the factory
// package.
package state

import (
	"context"
	"sort"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/rules"
)

// Store persists characters and the rule tables.
//
// Characters returns records sorted by name; callers own the returned
// values.
//
// Characters are keyed by their exact name. AddCharacter fails with an
// AlreadyExists error for a taken name, UpdateCharacter and
// RemoveCharacter fail with NotFound for an unknown one.
type Store interface {
	Characters(ctx context.Context) ([]*character.Character, error)
	AddCharacter(ctx context.Context, c *character.Character) error
	UpdateCharacter(ctx context.Context, c *character.Character) error
	RemoveCharacter(ctx context.Context, name string) error

	// Rules returns the stored rule tables. Tables a backend has never
	// been given fall back to the built-in defaults.
	Rules(ctx context.Context) (*rules.Book, error)
	ImportRules(ctx context.Context, book *rules.Book) error

	Close() error
}

// DocumentLoader fetches the raw document of one rule table. A nil
// document with a nil error means the table is not stored.
type DocumentLoader func(ctx context.Context, t rules.Table) ([]byte, error)

// LoadBook assembles a Book table by table, using the built-in document for
// every table load reports as missing.
func LoadBook(ctx context.Context, load DocumentLoader) (*rules.Book, error) {
	book := &rules.Book{}
	for _, t := range rules.Tables() {
		data, err := load(ctx, t)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s table", t)
		}
		if data == nil {
			if data, err = rules.DefaultDocument(t); err != nil {
				return nil, errors.Wrapf(err, "loading default %s table", t)
			}
		}
		if err := book.Decode(t, data); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "stored "+string(t)+" table is corrupt")
		}
	}
	return book, nil
}

// EncodeBook serializes every table of book.
func EncodeBook(book *rules.Book) (map[rules.Table][]byte, error) {
	docs := make(map[rules.Table][]byte, len(rules.Tables()))
	for _, t := range rules.Tables() {
		data, err := book.Encode(t)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s table", t)
		}
		docs[t] = data
	}
	return docs, nil
}

// ValidateName rejects characters that cannot be stored.
func ValidateName(c *character.Character) error {
	if c == nil {
		return errors.InvalidArgument("character is required")
	}
	if c.Name == "" {
		return errors.InvalidArgument("character name is required")
	}
	return nil
}

// SortByName orders chars by name in place.
func SortByName(chars []*character.Character) {
	sort.SliceStable(chars, func(i, j int) bool { return chars[i].Name < chars[j].Name })
}
