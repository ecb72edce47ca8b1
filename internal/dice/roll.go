package dice

import (
	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/mhtoin/initbot/internal/errors"
)

// RollOne evaluates a single outcome: Dice draws from src plus Modifier.
func (d DieRoll) RollOne(src rpgdice.Roller) (int, error) {
	values, err := src.RollN(d.Dice, d.Sides)
	if err != nil {
		return 0, errors.Wrapf(err, "rolling %dd%d", d.Dice, d.Sides)
	}

	total := d.Modifier
	for _, v := range values {
		total += v
	}
	return total, nil
}

// Roll evaluates Rolls independent outcomes.
func (d DieRoll) Roll(src rpgdice.Roller) ([]int, error) {
	results := make([]int, 0, d.Rolls)
	for i := 0; i < d.Rolls; i++ {
		v, err := d.RollOne(src)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}
