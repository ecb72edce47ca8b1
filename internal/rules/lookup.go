package rules

import (
	"strconv"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/match"
)

// SpeedOfTheCobra is the augur whose lucky roll is initiative.
const SpeedOfTheCobra = 24

// Ability resolves a name or unique prefix such as "str".
func (b *Book) Ability(prefix string) (Ability, error) {
	return match.UniquePrefix(prefix, b.Abilities, func(a Ability) string { return a.Name })
}

// Modifier returns the row for score, clamped to the ends of the table.
func (b *Book) Modifier(score int) (AbilityModifier, error) {
	return match.FirstOrClamp(score, b.Modifiers, func(m AbilityModifier) match.Bound {
		return match.Exactly(m.Score)
	})
}

// Augur returns the augur for a d30 roll.
func (b *Book) Augur(roll int) (Augur, error) {
	a, err := match.First(roll, b.Augurs, func(a Augur) match.Bound { return match.Exactly(a.Roll) })
	if err != nil {
		return Augur{}, errors.NotFoundf("no augur for roll %d", roll)
	}
	return a, nil
}

// Occupation returns the occupation for a d100 roll.
func (b *Book) Occupation(roll int) (Occupation, error) {
	o, err := match.First(roll, b.Occupations, func(o Occupation) match.Bound { return o.Roll })
	if err != nil {
		return Occupation{}, errors.NotFoundf("no occupation for roll %d", roll)
	}
	return o, nil
}

// Class resolves a class name or unique prefix.
func (b *Book) Class(name string) (Class, error) {
	return match.ExactOrUniquePrefix(name, b.Classes, func(c Class) string { return c.Name })
}

// ClassNames lists the names of all classes in table order.
func (b *Book) ClassNames() []string {
	names := make([]string, 0, len(b.Classes))
	for _, c := range b.Classes {
		names = append(names, c.Name)
	}
	return names
}

// CritTable returns the table with the given number.
func (b *Book) CritTable(number int) (CritTable, error) {
	for _, t := range b.CritTables {
		if t.Number == number {
			return t, nil
		}
	}
	numbers := make([]string, 0, len(b.CritTables))
	for _, t := range b.CritTables {
		numbers = append(numbers, strconv.Itoa(t.Number))
	}
	return CritTable{}, errors.NoMatch(strconv.Itoa(number), numbers)
}

// Crit returns the effect of a roll on a crit table. Rolls beyond either
// end of the table resolve to its first or last effect.
func (b *Book) Crit(table, roll int) (Crit, error) {
	t, err := b.CritTable(table)
	if err != nil {
		return Crit{}, err
	}
	return match.FirstOrClamp(roll, t.Crits, func(c Crit) match.Bound { return c.Roll })
}
