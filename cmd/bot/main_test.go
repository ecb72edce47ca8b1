package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/state/jsonfile"
)

func TestImportCommand(t *testing.T) {
	ctx := context.Background()
	srcDir, dstDir := t.TempDir(), t.TempDir()

	src, err := jsonfile.Open(srcDir)
	require.NoError(t, err)
	require.NoError(t, src.AddCharacter(ctx, character.New("Mel", "alice")))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"import", "json:" + srcDir, "json:" + dstDir})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Imported 1 new and 0 updated characters\n", out.String())

	dst, err := jsonfile.Open(dstDir)
	require.NoError(t, err)
	chars, err := dst.Characters(ctx)
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, "Mel", chars[0].Name)
}

func TestImportNeedsTwoStores(t *testing.T) {
	rootCmd.SetArgs([]string{"import", "json:./"})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetErr(nil) })
	assert.Error(t, rootCmd.Execute())
}

func TestLoadSoundsMissingManifest(t *testing.T) {
	m, err := loadSounds(filepath.Join(t.TempDir(), "sounds.yaml"), zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, m)
}
