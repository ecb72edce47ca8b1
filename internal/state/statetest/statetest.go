// Package statetest holds the behavioural checks every state backend must
// pass.
package statetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/rules"
	"github.com/mhtoin/initbot/internal/state"
)

// Opener returns a fresh, empty store. The store is closed by the caller.
type Opener func(t *testing.T) state.Store

// Sample returns a fully populated character.
func Sample(name, user string) *character.Character {
	c := character.New(name, user)
	c.Level = 1
	c.Strength = character.Int(12)
	c.Agility = character.Int(15)
	c.Stamina = character.Int(9)
	c.Personality = character.Int(8)
	c.Intelligence = character.Int(11)
	c.Luck = character.Int(13)
	c.InitialLuck = character.Int(14)
	c.HitPoints = character.Int(4)
	c.Equipment = []string{"23cp", "Iron helmet"}
	c.Occupation = character.Int(3)
	c.Exp = character.Int(10)
	c.Alignment = character.String("Lawful")
	c.Initiative = character.Int(17)
	t := int64(1700000000)
	c.InitiativeTime = &t
	c.HitDie = character.Int(8)
	c.Augur = character.Int(24)
	c.Cls = character.String("Cleric")
	return c
}

// Run exercises open against the shared Store contract.
func Run(t *testing.T, open Opener) {
	t.Helper()
	ctx := context.Background()

	newStore := func(t *testing.T) state.Store {
		s := open(t)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("starts empty", func(t *testing.T) {
		s := newStore(t)
		chars, err := s.Characters(ctx)
		require.NoError(t, err)
		assert.Empty(t, chars)
	})

	t.Run("add and list", func(t *testing.T) {
		s := newStore(t)
		mel := Sample("Mel", "alice")
		bare := character.New("Abe", "bob")
		require.NoError(t, s.AddCharacter(ctx, mel))
		require.NoError(t, s.AddCharacter(ctx, bare))

		chars, err := s.Characters(ctx)
		require.NoError(t, err)
		require.Len(t, chars, 2)
		assert.Equal(t, bare, chars[0])
		assert.Equal(t, mel, chars[1])
	})

	t.Run("duplicate name", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.AddCharacter(ctx, character.New("Mel", "alice")))
		err := s.AddCharacter(ctx, character.New("Mel", "bob"))
		require.Error(t, err)
		assert.True(t, errors.IsAlreadyExists(err), "got %v", err)
	})

	t.Run("empty name", func(t *testing.T) {
		s := newStore(t)
		err := s.AddCharacter(ctx, character.New("", "alice"))
		assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.AddCharacter(ctx, character.New("Mel", "alice")))

		mel := Sample("Mel", "alice")
		mel.Active = false
		mel.Initiative = nil
		require.NoError(t, s.UpdateCharacter(ctx, mel))

		chars, err := s.Characters(ctx)
		require.NoError(t, err)
		require.Len(t, chars, 1)
		assert.Equal(t, mel, chars[0])
	})

	t.Run("update unknown", func(t *testing.T) {
		s := newStore(t)
		err := s.UpdateCharacter(ctx, character.New("Ghost", "alice"))
		assert.True(t, errors.IsNotFound(err), "got %v", err)
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.AddCharacter(ctx, character.New("Mel", "alice")))
		require.NoError(t, s.AddCharacter(ctx, character.New("Abe", "bob")))
		require.NoError(t, s.RemoveCharacter(ctx, "Mel"))

		chars, err := s.Characters(ctx)
		require.NoError(t, err)
		require.Len(t, chars, 1)
		assert.Equal(t, "Abe", chars[0].Name)

		err = s.RemoveCharacter(ctx, "Mel")
		assert.True(t, errors.IsNotFound(err), "got %v", err)
	})

	t.Run("default rules", func(t *testing.T) {
		s := newStore(t)
		book, err := s.Rules(ctx)
		require.NoError(t, err)
		assert.Equal(t, rules.MustDefault(), book)
	})

	t.Run("import rules", func(t *testing.T) {
		s := newStore(t)
		book := rules.MustDefault()
		book.Augurs = book.Augurs[:2]
		book.Augurs[0].Description = "Lucky sign"
		book.Classes = book.Classes[:1]
		require.NoError(t, s.ImportRules(ctx, book))

		got, err := s.Rules(ctx)
		require.NoError(t, err)
		assert.Equal(t, book, got)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.Error(t, s.AddCharacter(cctx, character.New("Mel", "alice")))
		_, err := s.Characters(cctx)
		assert.Error(t, err)
	})

	t.Run("import between stores", func(t *testing.T) {
		src := newStore(t)
		dst := newStore(t)
		require.NoError(t, src.AddCharacter(ctx, Sample("Mel", "alice")))
		require.NoError(t, src.AddCharacter(ctx, character.New("Abe", "bob")))
		require.NoError(t, dst.AddCharacter(ctx, character.New("Mel", "carol")))

		res, err := state.Import(ctx, dst, src)
		require.NoError(t, err)
		assert.Equal(t, state.ImportResult{Added: 1, Updated: 1}, res)

		chars, err := dst.Characters(ctx)
		require.NoError(t, err)
		require.Len(t, chars, 2)
		assert.Equal(t, "alice", chars[1].User)
	})
}
