// Package character models a player character record and the derived
// values the bot computes from it.
package character

import (
	"encoding/json"
	"strings"

	"github.com/mhtoin/initbot/internal/rules"
)

// Character is one persisted character record. Nullable fields are nil
// until set.
type Character struct {
	Name               string   `json:"name"`
	User               string   `json:"user"`
	Active             bool     `json:"active"`
	Level              int      `json:"level"`
	Strength           *int     `json:"strength"`
	Agility            *int     `json:"agility"`
	Stamina            *int     `json:"stamina"`
	Personality        *int     `json:"personality"`
	Intelligence       *int     `json:"intelligence"`
	Luck               *int     `json:"luck"`
	InitialLuck        *int     `json:"initial_luck"`
	HitPoints          *int     `json:"hit_points"`
	Equipment          []string `json:"equipment"`
	Occupation         *int     `json:"occupation"`
	Exp                *int     `json:"exp"`
	Alignment          *string  `json:"alignment"`
	Initiative         *int     `json:"initiative"`
	InitiativeTime     *int64   `json:"initiative_time"`
	InitiativeModifier *int     `json:"initiative_modifier"`
	HitDie             *int     `json:"hit_die"`
	Augur              *int     `json:"augur"`
	Cls                *string  `json:"cls"`
}

// New returns an active level 0 character owned by user.
func New(name, user string) *Character {
	return &Character{Name: name, User: user, Active: true}
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// UnmarshalJSON decodes a record, treating a missing "active" as true.
func (c *Character) UnmarshalJSON(data []byte) error {
	type plain Character
	p := plain{Active: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Character(p)
	return nil
}

// Clone returns a deep copy of c.
func (c *Character) Clone() *Character {
	out := *c
	out.Strength = cloneInt(c.Strength)
	out.Agility = cloneInt(c.Agility)
	out.Stamina = cloneInt(c.Stamina)
	out.Personality = cloneInt(c.Personality)
	out.Intelligence = cloneInt(c.Intelligence)
	out.Luck = cloneInt(c.Luck)
	out.InitialLuck = cloneInt(c.InitialLuck)
	out.HitPoints = cloneInt(c.HitPoints)
	out.Occupation = cloneInt(c.Occupation)
	out.Exp = cloneInt(c.Exp)
	out.Initiative = cloneInt(c.Initiative)
	out.InitiativeModifier = cloneInt(c.InitiativeModifier)
	out.HitDie = cloneInt(c.HitDie)
	out.Augur = cloneInt(c.Augur)
	if c.InitiativeTime != nil {
		t := *c.InitiativeTime
		out.InitiativeTime = &t
	}
	if c.Alignment != nil {
		out.Alignment = String(*c.Alignment)
	}
	if c.Cls != nil {
		out.Cls = String(*c.Cls)
	}
	if c.Equipment != nil {
		out.Equipment = append([]string(nil), c.Equipment...)
	}
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	return Int(*v)
}

// Pretty renders the record as indented JSON with sorted keys.
func (c *Character) Pretty() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(fields, "", "    ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// AbilityScore pairs an ability with a character's score in it.
type AbilityScore struct {
	Ability rules.Ability
	Score   int
}

// Score returns the character's score in the named ability, or nil.
func (c *Character) Score(ability string) *int {
	switch strings.ToLower(ability) {
	case "strength":
		return c.Strength
	case "agility":
		return c.Agility
	case "stamina":
		return c.Stamina
	case "personality":
		return c.Personality
	case "intelligence":
		return c.Intelligence
	case "luck":
		return c.Luck
	default:
		return nil
	}
}

// AbilityScores lists the abilities the character has a score for, in
// table order.
func (c *Character) AbilityScores(book *rules.Book) []AbilityScore {
	var out []AbilityScore
	for _, a := range book.Abilities {
		if s := c.Score(a.Name); s != nil {
			out = append(out, AbilityScore{Ability: a, Score: *s})
		}
	}
	return out
}
