package rules_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/match"
	"github.com/mhtoin/initbot/internal/rules"
)

func TestDefault(t *testing.T) {
	book, err := rules.Default()
	require.NoError(t, err)

	assert.Len(t, book.Abilities, 6)
	assert.Len(t, book.Modifiers, 16)
	assert.Len(t, book.Augurs, 30)
	assert.Len(t, book.CritTables, 5)
	assert.NotEmpty(t, book.Occupations)
	assert.NotEmpty(t, book.Classes)
}

func TestAbility(t *testing.T) {
	book := rules.MustDefault()

	a, err := book.Ability("ag")
	require.NoError(t, err)
	assert.Equal(t, "Agility", a.Name)

	_, err = book.Ability("s")
	assert.True(t, errors.IsAmbiguousMatch(err))
	assert.ElementsMatch(t, []string{"Strength", "Stamina"}, errors.GetCandidates(err))

	_, err = book.Ability("wis")
	assert.True(t, errors.IsNoMatch(err))
}

func TestModifier(t *testing.T) {
	book := rules.MustDefault()

	tests := []struct {
		score int
		want  int
	}{
		{score: 1, want: -3},
		{score: 3, want: -3},
		{score: 10, want: 0},
		{score: 16, want: 2},
		{score: 18, want: 3},
		{score: 25, want: 3},
	}
	for _, tt := range tests {
		m, err := book.Modifier(tt.score)
		require.NoError(t, err, tt.score)
		assert.Equal(t, tt.want, m.Mod, tt.score)
	}
}

func TestAugur(t *testing.T) {
	book := rules.MustDefault()

	a, err := book.Augur(rules.SpeedOfTheCobra)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.Description, "Speed of the cobra"))

	_, err = book.Augur(31)
	assert.True(t, errors.IsNotFound(err))
}

func TestOccupation(t *testing.T) {
	book := rules.MustDefault()

	o, err := book.Occupation(1)
	require.NoError(t, err)
	assert.Equal(t, "Alchemist", o.Name)

	o, err = book.Occupation(45)
	require.NoError(t, err)
	assert.Equal(t, match.Between(39, 47), o.Roll)

	o, err = book.Occupation(100)
	require.NoError(t, err)
	assert.Equal(t, "Woodcutter", o.Name)

	_, err = book.Occupation(0)
	assert.True(t, errors.IsNotFound(err))
}

func TestOccupationsCoverD100(t *testing.T) {
	book := rules.MustDefault()
	for roll := 1; roll <= 100; roll++ {
		_, err := book.Occupation(roll)
		assert.NoError(t, err, "roll %d", roll)
	}
}

func TestClass(t *testing.T) {
	book := rules.MustDefault()

	c, err := book.Class("war")
	require.NoError(t, err)
	assert.Equal(t, "Warrior", c.Name)
	assert.Equal(t, 12, c.HitDie)

	assert.Contains(t, book.ClassNames(), "Wizard")

	_, err = book.Class("w")
	assert.True(t, errors.IsAmbiguousMatch(err))
}

func TestCrit(t *testing.T) {
	book := rules.MustDefault()

	c, err := book.Crit(1, 2)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.Effect, "Opportunistic strike"))

	c, err = book.Crit(1, -3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.Effect, "Force of blow"))

	c, err = book.Crit(1, 30)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.Effect, "Lucky blow"))

	c, err = book.Crit(5, 10)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.Effect, "You see red"))

	_, err = book.Crit(9, 1)
	assert.True(t, errors.IsNoMatch(err))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, errors.GetCandidates(err))
}

func TestEncodeDecode(t *testing.T) {
	book := rules.MustDefault()

	for _, table := range rules.Tables() {
		t.Run(string(table), func(t *testing.T) {
			data, err := book.Encode(table)
			require.NoError(t, err)

			var decoded rules.Book
			require.NoError(t, decoded.Decode(table, data))

			again, err := decoded.Encode(table)
			require.NoError(t, err)
			assert.JSONEq(t, string(data), string(again))
		})
	}

	_, err := book.Encode("spells")
	assert.Error(t, err)
	assert.Error(t, book.Decode(rules.TableAugurs, []byte("{")))
}

func TestXPThresholds(t *testing.T) {
	xp := rules.XPThresholds()
	require.Len(t, xp, 11)
	assert.Equal(t, 1090, xp[10])

	xp[0] = 99
	assert.Equal(t, 0, rules.XPThresholds()[0])
}
