package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/state"
	"github.com/mhtoin/initbot/internal/state/statetest"
)

func TestStoreContract(t *testing.T) {
	statetest.Run(t, func(t *testing.T) state.Store {
		s, err := Open(t.TempDir())
		require.NoError(t, err)
		return s
	})
}

func TestOpenRequiresDirectory(t *testing.T) {
	t.Parallel()

	_, err := Open("")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = Open(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, errors.CodeFailedPrecondition, errors.GetCode(err))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = Open(file)
	assert.Equal(t, errors.CodeFailedPrecondition, errors.GetCode(err))
}

func TestReadsExistingDocument(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	doc := `{"characters": [{"name": "Mel", "user": "alice", "agility": 15, "initiative": null}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CharactersFile), []byte(doc), 0o600))

	s, err := Open(dir)
	require.NoError(t, err)
	chars, err := s.Characters(context.Background())
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, "Mel", chars[0].Name)
	assert.True(t, chars[0].Active)
	require.NotNil(t, chars[0].Agility)
	assert.Equal(t, 15, *chars[0].Agility)
	assert.Nil(t, chars[0].Initiative)
}

func TestCorruptDocument(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CharactersFile), []byte("{"), 0o600))

	s, err := Open(dir)
	require.NoError(t, err)
	_, err = s.Characters(context.Background())
	assert.True(t, errors.IsInternal(err))
}

func TestPartialRuleOverride(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	doc := `{"augurs": [{"roll": 1, "description": "Only omen"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "augurs.json"), []byte(doc), 0o600))

	s, err := Open(dir)
	require.NoError(t, err)
	book, err := s.Rules(context.Background())
	require.NoError(t, err)
	require.Len(t, book.Augurs, 1)
	assert.Equal(t, "Only omen", book.Augurs[0].Description)
	assert.Len(t, book.Abilities, 6)
}
