package character

import (
	"fmt"

	"github.com/mhtoin/initbot/internal/dice"
	"github.com/mhtoin/initbot/internal/rules"
)

var (
	abilityRoll = dice.MustParse("3d6")
	hitPoints   = dice.MustParse("d4")
	coppers     = dice.MustParse("5d12")
	occupation  = dice.MustParse("d100")
)

// Generate rolls up a random level 0 character: 3d6 in each ability, 1d4
// hit points, a d100 occupation with its trade goods, 5d12 copper pieces,
// a random alignment and a random augur.
func Generate(name, user string, book *rules.Book, r *dice.Roller) (*Character, error) {
	c := New(name, user)

	for _, field := range []**int{&c.Strength, &c.Agility, &c.Stamina, &c.Personality, &c.Intelligence, &c.Luck} {
		v, err := r.RollOne(abilityRoll)
		if err != nil {
			return nil, err
		}
		*field = Int(v)
	}
	c.InitialLuck = Int(*c.Luck)

	hp, err := r.RollOne(hitPoints)
	if err != nil {
		return nil, err
	}
	c.HitPoints = Int(hp)

	roll, err := r.RollOne(occupation)
	if err != nil {
		return nil, err
	}
	occ, err := book.Occupation(roll)
	if err != nil {
		return nil, err
	}
	c.Occupation = Int(roll)

	cp, err := r.RollOne(coppers)
	if err != nil {
		return nil, err
	}
	c.Equipment = []string{fmt.Sprintf("%dcp", cp), occ.Goods}
	c.Exp = Int(0)

	alignments := rules.Alignments()
	i, err := r.Pick(len(alignments))
	if err != nil {
		return nil, err
	}
	c.Alignment = String(alignments[i])

	if len(book.Augurs) > 0 {
		i, err := r.Pick(len(book.Augurs))
		if err != nil {
			return nil, err
		}
		c.Augur = Int(book.Augurs[i].Roll)
	}
	return c, nil
}
