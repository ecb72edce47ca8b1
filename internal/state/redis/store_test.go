package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/state"
	"github.com/mhtoin/initbot/internal/state/statetest"
)

func newTestStore(t *testing.T, prefix string) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := New(&Config{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		Prefix: prefix,
	})
	require.NoError(t, err)
	return s, mr
}

func TestStoreContract(t *testing.T) {
	statetest.Run(t, func(t *testing.T) state.Store {
		s, _ := newTestStore(t, "")
		return s
	})
}

func TestConfigValidate(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = New(&Config{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestKeyLayout(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, "initbot:")
	require.NoError(t, s.AddCharacter(ctx, character.New("Mel", "alice")))

	assert.True(t, mr.Exists("initbot:character:Mel"))
	members, err := mr.SMembers("initbot:characters")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mel"}, members)

	require.NoError(t, s.RemoveCharacter(ctx, "Mel"))
	assert.False(t, mr.Exists("initbot:character:Mel"))
}

func TestStaleIndexEntryIsSkipped(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, "")
	require.NoError(t, s.AddCharacter(ctx, character.New("Mel", "alice")))
	_, err := mr.SetAdd(characterIndexKey, "Ghost")
	require.NoError(t, err)

	chars, err := s.Characters(ctx)
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, "Mel", chars[0].Name)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	s, err := Open(ctx, mr.Addr())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, "//"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(ctx, "")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestOpenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), addr)
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}
