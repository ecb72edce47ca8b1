package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mhtoin/initbot/internal/dice"
	"github.com/mhtoin/initbot/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want dice.DieRoll
	}{
		{in: "d20", want: dice.DieRoll{Sides: 20, Dice: 1, Modifier: 0, Rolls: 1}},
		{in: "2d6+3", want: dice.DieRoll{Sides: 6, Dice: 2, Modifier: 3, Rolls: 1}},
		{in: "3x1d6+1", want: dice.DieRoll{Sides: 6, Dice: 1, Modifier: 1, Rolls: 3}},
		{in: "D8-2", want: dice.DieRoll{Sides: 8, Dice: 1, Modifier: -2, Rolls: 1}},
		{in: "2X4d4", want: dice.DieRoll{Sides: 4, Dice: 4, Modifier: 0, Rolls: 2}},
		{in: "d1", want: dice.DieRoll{Sides: 1, Dice: 1, Modifier: 0, Rolls: 1}},
		{in: "1000d10000+1000000", want: dice.DieRoll{Sides: dice.MaxSides, Dice: dice.MaxDice, Modifier: dice.MaxModifier, Rolls: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dice.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, dice.IsNotation(tt.in))
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{
		"", "d", "20", "abc", "d0", "0d6", "0xd6", "2d6+", "d20 ", " d20", "d-4", "2d6+1+1", "x2d6", "1001d6", "101xd6",
		"99999999999999999999d6", "d10001", "1000d9223372036854775807", "d6+9223372036854775807", "d6-1000001",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := dice.Parse(in)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidNotation(err))
			assert.False(t, dice.IsNotation(in))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "d20", dice.MustParse("1d20").String())
	assert.Equal(t, "3xd6+1", dice.MustParse("3x1d6+1").String())
	assert.Equal(t, "2x3d8-2", dice.MustParse("2x3d8-2").String())
	assert.Equal(t, "d6", dice.D(6).String())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestParse_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := dice.DieRoll{
			Sides:    rapid.IntRange(1, 1000).Draw(rt, "sides"),
			Dice:     rapid.IntRange(1, dice.MaxDice).Draw(rt, "dice"),
			Modifier: rapid.IntRange(-100, 100).Draw(rt, "modifier"),
			Rolls:    rapid.IntRange(1, dice.MaxRolls).Draw(rt, "rolls"),
		}

		got, err := dice.Parse(d.String())
		if err != nil {
			rt.Fatalf("Parse(%q): %v", d.String(), err)
		}
		if got != d {
			rt.Fatalf("round trip of %q: got %+v, want %+v", d.String(), got, d)
		}
	})
}

func TestParse_NeverPanics(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		token := rapid.StringMatching(`[0-9xXdD+\- ]{0,12}`).Draw(rt, "token")
		d, err := dice.Parse(token)
		if err == nil && (d.Sides < 1 || d.Sides > dice.MaxSides || d.Dice < 1 || d.Rolls < 1) {
			rt.Fatalf("Parse(%q) accepted %+v", token, d)
		}
	})
}
