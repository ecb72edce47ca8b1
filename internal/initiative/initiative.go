// Package initiative orders characters for a combat round.
package initiative

import (
	"sort"
	"time"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/rules"
)

// Window is how long a set initiative stays in the order.
const Window = 24 * time.Hour

// NoInitiative is the key of a character whose initiative is unset.
const NoInitiative = -1

// MaxInitiative bounds the magnitude of an initiative roll so that Key
// stays within int range.
const MaxInitiative = 1_000_000

// rank is the tuple characters are ordered by, compared field by field.
type rank struct {
	initiative int
	agility    int
	hitDie     int
	tie        int
}

func (a rank) less(b rank) bool {
	switch {
	case a.initiative != b.initiative:
		return a.initiative < b.initiative
	case a.agility != b.agility:
		return a.agility < b.agility
	case a.hitDie != b.hitDie:
		return a.hitDie < b.hitDie
	}
	return a.tie < b.tie
}

func rankOf(c *character.Character, book *rules.Book, src rpgdice.Roller) (rank, error) {
	r := rank{initiative: *c.Initiative, hitDie: c.HitDieSides(book)}
	if c.Agility != nil {
		r.agility = *c.Agility
	}

	tie, err := src.Roll(100)
	if err != nil {
		return rank{}, errors.Wrap(err, "rolling initiative tie-break")
	}
	r.tie = tie - 1
	return r, nil
}

// Key computes the sort key of c: initiative first, then agility score,
// then hit die size, then a random number in [0, 99]. The packing only
// orders correctly while agility and hit die stay below 100; Rank compares
// the parts one by one instead.
func Key(c *character.Character, book *rules.Book, src rpgdice.Roller) (int, error) {
	if c.Initiative == nil {
		return NoInitiative, nil
	}

	r, err := rankOf(c, book, src)
	if err != nil {
		return 0, err
	}
	return r.initiative*1_000_000 + r.agility*10_000 + r.hitDie*100 + r.tie, nil
}

// Rank returns chars sorted by initiative, agility, hit die and a random
// tie-break, all descending. The random part is drawn once per call, so
// ties in everything else may order differently from one call to the
// next. Characters without initiative come last even when others hold a
// negative initiative.
func Rank(chars []*character.Character, book *rules.Book, src rpgdice.Roller) ([]*character.Character, error) {
	type entry struct {
		c    *character.Character
		set  bool
		rank rank
	}

	entries := make([]entry, len(chars))
	for i, c := range chars {
		entries[i] = entry{c: c, set: c.Initiative != nil}
		if !entries[i].set {
			continue
		}
		r, err := rankOf(c, book, src)
		if err != nil {
			return nil, err
		}
		entries[i].rank = r
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].set != entries[j].set {
			return entries[i].set
		}
		return entries[j].rank.less(entries[i].rank)
	})

	ranked := make([]*character.Character, len(entries))
	for i, e := range entries {
		ranked[i] = e.c
	}
	return ranked, nil
}

// Recent keeps the characters whose initiative was set after now-window.
func Recent(chars []*character.Character, now time.Time, window time.Duration) []*character.Character {
	cutoff := now.Add(-window).Unix()
	var out []*character.Character
	for _, c := range chars {
		if c.InitiativeTime != nil && *c.InitiativeTime > cutoff {
			out = append(out, c)
		}
	}
	return out
}
