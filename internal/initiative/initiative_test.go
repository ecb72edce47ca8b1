package initiative_test

import (
	"fmt"
	"testing"
	"time"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/initiative"
	"github.com/mhtoin/initbot/internal/rules"
)

type fixedRoller int

func (f fixedRoller) Roll(size int) (int, error) { return min(int(f), size), nil }

func (f fixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = min(int(f), size)
	}
	return out, nil
}

type rapidRoller struct{ t *rapid.T }

func (r rapidRoller) Roll(size int) (int, error) {
	return rapid.IntRange(1, size).Draw(r.t, "face"), nil
}

func (r rapidRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

type brokenRoller struct{}

func (brokenRoller) Roll(int) (int, error)         { return 0, fmt.Errorf("no entropy") }
func (brokenRoller) RollN(int, int) ([]int, error) { return nil, fmt.Errorf("no entropy") }

var _ rpgdice.Roller = fixedRoller(1)

func withInit(name string, ini, agility, hitDie *int) *character.Character {
	c := character.New(name, "user")
	c.Initiative = ini
	c.Agility = agility
	c.HitDie = hitDie
	return c
}

func names(chars []*character.Character) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = c.Name
	}
	return out
}

func TestKey(t *testing.T) {
	book := rules.MustDefault()
	i := character.Int

	key, err := initiative.Key(withInit("a", i(20), i(10), i(8)), book, fixedRoller(43))
	require.NoError(t, err)
	assert.Equal(t, 20_000_000+100_000+800+42, key)

	key, err = initiative.Key(withInit("b", nil, i(18), nil), book, fixedRoller(43))
	require.NoError(t, err)
	assert.Equal(t, initiative.NoInitiative, key)

	warrior := withInit("c", i(3), nil, nil)
	warrior.Cls = character.String("Warrior")
	key, err = initiative.Key(warrior, book, fixedRoller(1))
	require.NoError(t, err)
	assert.Equal(t, 3_001_200, key)
}

func TestRank(t *testing.T) {
	book := rules.MustDefault()
	i := character.Int

	chars := []*character.Character{
		withInit("nobody", nil, i(18), i(12)),
		withInit("slow", i(20), i(5), nil),
		withInit("quick", i(20), i(10), nil),
		withInit("big die", i(12), i(10), i(12)),
		withInit("small die", i(12), i(10), i(4)),
		withInit("top", i(21), nil, nil),
		withInit("fumbled", i(-3), nil, nil),
	}

	ranked, err := initiative.Rank(chars, book, fixedRoller(50))
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "quick", "slow", "big die", "small die", "fumbled", "nobody"}, names(ranked))
	assert.Equal(t, "nobody", chars[0].Name, "input is not reordered")
}

func TestRank_ExtremeValues(t *testing.T) {
	book := rules.MustDefault()
	i := character.Int

	chars := []*character.Character{
		withInit("low", i(1), i(1_000_000), i(1_000_000)),
		withInit("high", i(initiative.MaxInitiative), i(3), nil),
		withInit("lowest", i(-initiative.MaxInitiative), i(1_000_000), nil),
		withInit("quick", i(1), i(1_000_001), nil),
	}

	ranked, err := initiative.Rank(chars, book, fixedRoller(50))
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "quick", "low", "lowest"}, names(ranked))
}

func TestRank_SourceError(t *testing.T) {
	_, err := initiative.Rank([]*character.Character{withInit("a", character.Int(1), nil, nil)}, nil, brokenRoller{})
	assert.Error(t, err)
}

func TestRank_Properties(t *testing.T) {
	book := rules.MustDefault()
	optInt := func(lo, hi int) *rapid.Generator[*int] {
		return rapid.Custom(func(t *rapid.T) *int {
			if rapid.Bool().Draw(t, "set") {
				return character.Int(rapid.IntRange(lo, hi).Draw(t, "v"))
			}
			return nil
		})
	}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(rt, "n")
		chars := make([]*character.Character, n)
		for k := range chars {
			chars[k] = withInit(fmt.Sprint(k),
				optInt(-5, 30).Draw(rt, "initiative"),
				optInt(3, 18).Draw(rt, "agility"),
				optInt(4, 12).Draw(rt, "hit_die"))
		}

		ranked, err := initiative.Rank(chars, book, rapidRoller{t: rt})
		if err != nil {
			rt.Fatalf("rank: %v", err)
		}
		if len(ranked) != n {
			rt.Fatalf("got %d characters, want %d", len(ranked), n)
		}

		seenUnset := false
		for k, c := range ranked {
			if c.Initiative == nil {
				seenUnset = true
				continue
			}
			if seenUnset {
				rt.Fatalf("%s with initiative ranked after one without", c.Name)
			}
			if k > 0 && ranked[k-1].Initiative != nil && *ranked[k-1].Initiative < *c.Initiative {
				rt.Fatalf("initiative %d ranked after %d", *c.Initiative, *ranked[k-1].Initiative)
			}
		}
	})
}

func TestRecent(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	stamp := func(d time.Duration) *int64 {
		v := now.Add(-d).Unix()
		return &v
	}

	fresh := character.New("fresh", "u")
	fresh.InitiativeTime = stamp(time.Hour)
	stale := character.New("stale", "u")
	stale.InitiativeTime = stamp(25 * time.Hour)
	never := character.New("never", "u")
	edge := character.New("edge", "u")
	edge.InitiativeTime = stamp(initiative.Window)

	got := initiative.Recent([]*character.Character{fresh, stale, never, edge}, now, initiative.Window)
	assert.Equal(t, []string{"fresh"}, names(got))
}
