package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/state"
	"github.com/mhtoin/initbot/internal/state/statetest"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "initbot.sqlite")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestStoreContract(t *testing.T) {
	statetest.Run(t, func(t *testing.T) state.Store {
		return openTempStore(t)
	})
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "initbot.sqlite")

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.AddCharacter(ctx, statetest.Sample("Mel", "alice")); err != nil {
		t.Fatalf("add character: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer second.Close()

	chars, err := second.Characters(ctx)
	if err != nil {
		t.Fatalf("characters: %v", err)
	}
	if len(chars) != 1 || chars[0].Name != "Mel" {
		t.Fatalf("characters = %+v, want Mel", chars)
	}

	var applied int
	if err := second.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 1 {
		t.Fatalf("applied migrations = %d, want 1", applied)
	}
}

func TestEmptyEquipmentSurvives(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := openTempStore(t)
	defer store.Close()

	c := character.New("Mel", "alice")
	c.Equipment = []string{}
	if err := store.AddCharacter(ctx, c); err != nil {
		t.Fatalf("add character: %v", err)
	}
	chars, err := store.Characters(ctx)
	if err != nil {
		t.Fatalf("characters: %v", err)
	}
	if chars[0].Equipment == nil || len(chars[0].Equipment) != 0 {
		t.Fatalf("equipment = %#v, want empty slice", chars[0].Equipment)
	}
}

func TestExtractUp(t *testing.T) {
	t.Parallel()

	got := extractUp("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n")
	if got != "\nCREATE TABLE a (x);\n" {
		t.Fatalf("extractUp = %q", got)
	}
	if got := extractUp("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("extractUp without markers = %q", got)
	}
}
