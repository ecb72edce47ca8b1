package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/mhtoin/initbot/internal/dice"
	"github.com/mhtoin/initbot/internal/errors"
)

func TestRoll_Repetitions(t *testing.T) {
	d := dice.MustParse("3x1d6+1")
	results, err := d.Roll(&seqRoller{values: []int{2, 6, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7, 2}, results)
}

func TestRollOne_SumsDice(t *testing.T) {
	v, err := dice.MustParse("3d6-2").RollOne(&seqRoller{values: []int{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestRoll_WithinRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := dice.DieRoll{
			Sides:    rapid.IntRange(1, 100).Draw(rt, "sides"),
			Dice:     rapid.IntRange(1, 10).Draw(rt, "dice"),
			Modifier: rapid.IntRange(-20, 20).Draw(rt, "modifier"),
			Rolls:    rapid.IntRange(1, 5).Draw(rt, "rolls"),
		}

		results, err := d.Roll(rapidRoller{t: rt})
		if err != nil {
			rt.Fatalf("roll: %v", err)
		}
		if len(results) != d.Rolls {
			rt.Fatalf("got %d results, want %d", len(results), d.Rolls)
		}
		for _, v := range results {
			if v < d.Min() || v > d.Max() {
				rt.Fatalf("%s produced %d outside [%d, %d]", d, v, d.Min(), d.Max())
			}
		}
	})
}

func TestRoll_SourceError(t *testing.T) {
	_, err := dice.D(20).Roll(brokenRoller{})
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
}

func TestRoller_LogsResults(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewRoller(&seqRoller{values: []int{4}}, zap.New(core))

	v, err := r.RollOne(dice.MustParse("d20+1"))
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "d20+1", entries[0].ContextMap()["expression"])
}

func TestRoller_Pick(t *testing.T) {
	r := dice.NewRoller(&seqRoller{values: []int{3}}, nil)
	i, err := r.Pick(30)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestFormatResults(t *testing.T) {
	assert.Equal(t, "7", dice.FormatResults([]int{7}))
	assert.Equal(t, "8 (3, 5)", dice.FormatResults([]int{3, 5}))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		words  []string
		values []int
		want   string
		rolled bool
	}{
		{
			name:   "attack and damage",
			words:  []string{"d20+5", "to", "attack", "the", "construct", "for", "1d6+3", "damage"},
			values: []int{12, 4},
			want:   "17 to attack the construct for 7 damage",
			rolled: true,
		},
		{
			name:   "punctuation kept",
			words:  []string{"hit", "(d20+5),", "ouch"},
			values: []int{12},
			want:   "hit (17), ouch",
			rolled: true,
		},
		{
			name:   "repetitions",
			words:  []string{"2xd6"},
			values: []int{3, 5},
			want:   "8 (3, 5)",
			rolled: true,
		},
		{
			name:   "no dice",
			words:  []string{"just", "talking", "d0"},
			values: []int{1},
			want:   "just talking d0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dice.NewRoller(&seqRoller{values: tt.values}, zap.NewNop())
			got, rolled, err := r.Render(tt.words)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rolled, rolled)
		})
	}
}
