package character

import (
	"github.com/mhtoin/initbot/internal/rules"
)

// InitiativeModifier returns the modifier added to a d20 initiative roll.
// An explicit override wins. Otherwise it is the agility modifier plus, for
// characters born under the Speed of the Cobra, the initial luck modifier.
// ok is false when nothing determines a modifier.
func (c *Character) InitiativeModifier(book *rules.Book) (mod int, ok bool, err error) {
	if c.InitiativeModifier != nil {
		return *c.InitiativeModifier, true, nil
	}

	if c.Agility != nil {
		m, err := book.Modifier(*c.Agility)
		if err != nil {
			return 0, false, err
		}
		mod, ok = m.Mod, true
	}

	if c.Augur != nil && *c.Augur == rules.SpeedOfTheCobra && c.InitialLuck != nil {
		m, err := book.Modifier(*c.InitialLuck)
		if err != nil {
			return 0, false, err
		}
		mod, ok = mod+m.Mod, true
	}
	return mod, ok, nil
}

// HitDieSides returns the sides of the character's hit die: the explicit
// value if set, otherwise the die of its class. Zero means unknown.
func (c *Character) HitDieSides(book *rules.Book) int {
	if c.HitDie != nil {
		return *c.HitDie
	}
	if c.Cls != nil && book != nil {
		if cls, err := book.Class(*c.Cls); err == nil {
			return cls.HitDie
		}
	}
	return 0
}

// LuckModifier returns the modifier for the current luck score.
func (c *Character) LuckModifier(book *rules.Book) (int, bool) {
	if c.Luck == nil {
		return 0, false
	}
	m, err := book.Modifier(*c.Luck)
	if err != nil {
		return 0, false
	}
	return m.Mod, true
}
