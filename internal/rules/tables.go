package rules

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
)

// Table names a persisted unit of the Book. Each one is stored as its own
// JSON document.
type Table string

const (
	TableAbilities   Table = "abilities"
	TableAugurs      Table = "augurs"
	TableOccupations Table = "occupations"
	TableClasses     Table = "classes"
	TableCrits       Table = "crits"
)

// Tables lists every table in load order.
func Tables() []Table {
	return []Table{TableAbilities, TableAugurs, TableOccupations, TableClasses, TableCrits}
}

// FileName is the name of the table's document in a json state directory.
func (t Table) FileName() string {
	return string(t) + ".json"
}

//go:embed data/*.json
var defaults embed.FS

type abilitiesDoc struct {
	Abilities []Ability         `json:"abilities"`
	Modifiers []AbilityModifier `json:"modifiers"`
}

type augursDoc struct {
	Augurs []Augur `json:"augurs"`
}

type occupationsDoc struct {
	Occupations []Occupation `json:"occupations"`
}

type classesDoc struct {
	Classes []Class `json:"classes"`
}

type critsDoc struct {
	CritTables []CritTable `json:"crit_tables"`
}

// Encode serializes one table of the book.
func (b *Book) Encode(t Table) ([]byte, error) {
	var doc any
	switch t {
	case TableAbilities:
		doc = abilitiesDoc{Abilities: b.Abilities, Modifiers: b.Modifiers}
	case TableAugurs:
		doc = augursDoc{Augurs: b.Augurs}
	case TableOccupations:
		doc = occupationsDoc{Occupations: b.Occupations}
	case TableClasses:
		doc = classesDoc{Classes: b.Classes}
	case TableCrits:
		doc = critsDoc{CritTables: b.CritTables}
	default:
		return nil, fmt.Errorf("unknown rules table %q", t)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode replaces one table of the book with the document in data.
func (b *Book) Decode(t Table, data []byte) error {
	switch t {
	case TableAbilities:
		var doc abilitiesDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding %s: %w", t, err)
		}
		b.Abilities, b.Modifiers = doc.Abilities, doc.Modifiers
	case TableAugurs:
		var doc augursDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding %s: %w", t, err)
		}
		b.Augurs = doc.Augurs
	case TableOccupations:
		var doc occupationsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding %s: %w", t, err)
		}
		b.Occupations = doc.Occupations
	case TableClasses:
		var doc classesDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding %s: %w", t, err)
		}
		b.Classes = doc.Classes
	case TableCrits:
		var doc critsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding %s: %w", t, err)
		}
		b.CritTables = doc.CritTables
	default:
		return fmt.Errorf("unknown rules table %q", t)
	}
	return nil
}

// DefaultDocument returns the built-in document for a table.
func DefaultDocument(t Table) ([]byte, error) {
	return defaults.ReadFile(path.Join("data", t.FileName()))
}

// Default returns a Book loaded from the built-in tables.
func Default() (*Book, error) {
	b := &Book{}
	for _, t := range Tables() {
		data, err := DefaultDocument(t)
		if err != nil {
			return nil, fmt.Errorf("reading default %s: %w", t, err)
		}
		if err := b.Decode(t, data); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// MustDefault is Default for callers that cannot recover from a broken
// build.
func MustDefault() *Book {
	b, err := Default()
	if err != nil {
		panic(err)
	}
	return b
}
