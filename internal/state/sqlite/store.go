// Package sqlite persists state in a SQLite database with one row per
// character and the rule tables stored as JSON documents.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/rules"
	"github.com/mhtoin/initbot/internal/state"
	"github.com/mhtoin/initbot/internal/state/sqlite/migrations"
)

const columns = `name, user, active, level, strength, agility, stamina, personality,
	intelligence, luck, initial_luck, hit_points, equipment, occupation, exp, alignment,
	initiative, initiative_time, initiative_modifier, hit_die, augur, cls`

// Store persists state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ state.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Characters(ctx context.Context) ([]*character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT "+columns+" FROM characters ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()

	var out []*character.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	return out, nil
}

func (s *Store) AddCharacter(ctx context.Context, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := state.ValidateName(c); err != nil {
		return err
	}
	args, err := values(c)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `INSERT INTO characters (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.AlreadyExistsf("character %s already exists", c.Name)
		}
		return fmt.Errorf("insert character: %w", err)
	}
	return nil
}

func (s *Store) UpdateCharacter(ctx context.Context, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := state.ValidateName(c); err != nil {
		return err
	}
	args, err := values(c)
	if err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `UPDATE characters SET
		user = ?, active = ?, level = ?, strength = ?, agility = ?, stamina = ?,
		personality = ?, intelligence = ?, luck = ?, initial_luck = ?, hit_points = ?,
		equipment = ?, occupation = ?, exp = ?, alignment = ?, initiative = ?,
		initiative_time = ?, initiative_modifier = ?, hit_die = ?, augur = ?, cls = ?
		WHERE name = ?`, append(args[1:], c.Name)...)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return requireRow(res, c.Name)
}

func (s *Store) RemoveCharacter(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM characters WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return requireRow(res, name)
}

func (s *Store) Rules(ctx context.Context) (*rules.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return state.LoadBook(ctx, func(ctx context.Context, t rules.Table) ([]byte, error) {
		var doc string
		err := s.sqlDB.QueryRowContext(ctx, "SELECT document FROM rule_tables WHERE name = ?", string(t)).Scan(&doc)
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("query rule table %s: %w", t, err)
		}
		return []byte(doc), nil
	})
}

func (s *Store) ImportRules(ctx context.Context, book *rules.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	docs, err := state.EncodeBook(book)
	if err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rules import: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	for _, t := range rules.Tables() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO rule_tables (name, document, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
			string(t), string(docs[t]), now,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store rule table %s: %w", t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rules import: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row scanner) (*character.Character, error) {
	var c character.Character
	var active bool
	var strength, agility, stamina, personality, intel sql.NullInt64
	var luck, initialLuck, hitPoints, occupation, exp sql.NullInt64
	var initiative, initiativeTime, initiativeMod, hitDie, augur sql.NullInt64
	var equipment, alignment, cls sql.NullString
	if err := row.Scan(
		&c.Name, &c.User, &active, &c.Level, &strength, &agility, &stamina, &personality,
		&intel, &luck, &initialLuck, &hitPoints, &equipment, &occupation, &exp, &alignment,
		&initiative, &initiativeTime, &initiativeMod, &hitDie, &augur, &cls,
	); err != nil {
		return nil, fmt.Errorf("scan character: %w", err)
	}
	c.Active = active
	c.Strength = intPtr(strength)
	c.Agility = intPtr(agility)
	c.Stamina = intPtr(stamina)
	c.Personality = intPtr(personality)
	c.Intelligence = intPtr(intel)
	c.Luck = intPtr(luck)
	c.InitialLuck = intPtr(initialLuck)
	c.HitPoints = intPtr(hitPoints)
	c.Occupation = intPtr(occupation)
	c.Exp = intPtr(exp)
	c.Initiative = intPtr(initiative)
	c.InitiativeModifier = intPtr(initiativeMod)
	c.HitDie = intPtr(hitDie)
	c.Augur = intPtr(augur)
	if initiativeTime.Valid {
		t := initiativeTime.Int64
		c.InitiativeTime = &t
	}
	if alignment.Valid {
		c.Alignment = character.String(alignment.String)
	}
	if cls.Valid {
		c.Cls = character.String(cls.String)
	}
	if equipment.Valid {
		if err := json.Unmarshal([]byte(equipment.String), &c.Equipment); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "equipment of "+c.Name+" is corrupt")
		}
	}
	return &c, nil
}

func values(c *character.Character) ([]any, error) {
	var equipment any
	if c.Equipment != nil {
		data, err := json.Marshal(c.Equipment)
		if err != nil {
			return nil, fmt.Errorf("encode equipment: %w", err)
		}
		equipment = string(data)
	}
	return []any{
		c.Name, c.User, c.Active, c.Level,
		nullInt(c.Strength), nullInt(c.Agility), nullInt(c.Stamina), nullInt(c.Personality),
		nullInt(c.Intelligence), nullInt(c.Luck), nullInt(c.InitialLuck), nullInt(c.HitPoints),
		equipment, nullInt(c.Occupation), nullInt(c.Exp), nullString(c.Alignment),
		nullInt(c.Initiative), nullInt64(c.InitiativeTime), nullInt(c.InitiativeModifier),
		nullInt(c.HitDie), nullInt(c.Augur), nullString(c.Cls),
	}, nil
}

func requireRow(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return errors.NotFoundf("character %s not found", name)
	}
	return nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return character.Int(int(v.Int64))
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
