package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/state/bolt"
	"github.com/mhtoin/initbot/internal/state/jsonfile"
	"github.com/mhtoin/initbot/internal/state/redis"
	"github.com/mhtoin/initbot/internal/state/sqlite"
)

func TestOpenDispatchesOnScheme(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	mr := miniredis.RunT(t)

	tests := []struct {
		source string
		check  func(t *testing.T, v any)
	}{
		{"json:" + dir, func(t *testing.T, v any) { assert.IsType(t, &jsonfile.Store{}, v) }},
		{"sqlite:" + filepath.Join(dir, "state.sqlite"), func(t *testing.T, v any) { assert.IsType(t, &sqlite.Store{}, v) }},
		{"redis:" + mr.Addr(), func(t *testing.T, v any) { assert.IsType(t, &redis.Store{}, v) }},
		{"BOLT:" + filepath.Join(dir, "state.db"), func(t *testing.T, v any) { assert.IsType(t, &bolt.Store{}, v) }},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			store, err := Open(ctx, tt.source)
			require.NoError(t, err)
			defer store.Close()
			tt.check(t, store)
		})
	}
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), "mongo:localhost")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, errors.GetMessage(err), "bolt, json, redis, sqlite")

	_, err = Open(context.Background(), "nowhere")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestOpenKeepsBackendCode(t *testing.T) {
	_, err := Open(context.Background(), "json:"+filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, errors.CodeFailedPrecondition, errors.GetCode(err))
}
