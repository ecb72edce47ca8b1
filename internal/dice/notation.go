// Package dice parses and evaluates dice notation such as d20, 2d6+3 and
// 3x1d6+1.
package dice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mhtoin/initbot/internal/errors"
)

// Limits keep a single chat command from rolling unbounded amounts of dice.
const (
	MaxDice     = 1000
	MaxRolls    = 100
	MaxSides    = 10_000
	MaxModifier = 1_000_000
)

var notationPattern = regexp.MustCompile(`(?i)^(?:([0-9]+)x)?([0-9]*)d([0-9]+)([+-][0-9]+)?$`)

// DieRoll is a parsed dice expression: Rolls independent outcomes, each
// the sum of Dice dice with Sides sides plus Modifier.
type DieRoll struct {
	Sides    int
	Dice     int
	Modifier int
	Rolls    int
}

// D returns a single die with the given number of sides.
func D(sides int) DieRoll {
	return DieRoll{Sides: sides, Dice: 1, Rolls: 1}
}

// Parse reads a whole token of the form [reps x][count]d sides[+|-mod].
//
// Parse("3x1d6+1") == DieRoll{Sides: 6, Dice: 1, Modifier: 1, Rolls: 3}
func Parse(token string) (DieRoll, error) {
	m := notationPattern.FindStringSubmatch(token)
	if m == nil {
		return DieRoll{}, errors.InvalidNotationf("'%s' is not a dice roll", token)
	}

	d := DieRoll{Dice: 1, Rolls: 1}
	var err error
	if d.Sides, err = strconv.Atoi(m[3]); err != nil || d.Sides < 1 || d.Sides > MaxSides {
		return DieRoll{}, errors.InvalidNotationf("'%s' must have between 1 and %d sides", token, MaxSides)
	}
	if m[2] != "" {
		if d.Dice, err = strconv.Atoi(m[2]); err != nil || d.Dice < 1 || d.Dice > MaxDice {
			return DieRoll{}, errors.InvalidNotationf("'%s' must roll between 1 and %d dice", token, MaxDice)
		}
	}
	if m[1] != "" {
		if d.Rolls, err = strconv.Atoi(m[1]); err != nil || d.Rolls < 1 || d.Rolls > MaxRolls {
			return DieRoll{}, errors.InvalidNotationf("'%s' must repeat between 1 and %d times", token, MaxRolls)
		}
	}
	if m[4] != "" {
		if d.Modifier, err = strconv.Atoi(m[4]); err != nil || d.Modifier > MaxModifier || d.Modifier < -MaxModifier {
			return DieRoll{}, errors.InvalidNotationf("'%s' must have a modifier between -%d and %d", token, MaxModifier, MaxModifier)
		}
	}
	return d, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(token string) DieRoll {
	d, err := Parse(token)
	if err != nil {
		panic("dice: MustParse(" + token + "): " + err.Error())
	}
	return d
}

// IsNotation reports whether token parses as a DieRoll.
func IsNotation(token string) bool {
	_, err := Parse(token)
	return err == nil
}

// String renders the canonical notation, leaving out default parts.
func (d DieRoll) String() string {
	var b strings.Builder
	if d.Rolls != 1 {
		b.WriteString(strconv.Itoa(d.Rolls))
		b.WriteByte('x')
	}
	if d.Dice != 1 {
		b.WriteString(strconv.Itoa(d.Dice))
	}
	b.WriteByte('d')
	b.WriteString(strconv.Itoa(d.Sides))
	if d.Modifier > 0 {
		b.WriteByte('+')
	}
	if d.Modifier != 0 {
		b.WriteString(strconv.Itoa(d.Modifier))
	}
	return b.String()
}

// Min is the smallest possible outcome of one roll.
func (d DieRoll) Min() int { return d.Dice + d.Modifier }

// Max is the largest possible outcome of one roll.
func (d DieRoll) Max() int { return d.Dice*d.Sides + d.Modifier }
