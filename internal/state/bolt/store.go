// Package bolt stores state in a bbolt file. Characters are JSON values
// keyed by name; rule tables are JSON documents keyed by table name.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/rules"
	"github.com/mhtoin/initbot/internal/state"
)

// Store wraps a bbolt database.
type Store struct {
	db *bbolt.DB
}

var _ state.Store = (*Store)(nil)

// Open opens or creates a bbolt database file and ensures all buckets exist.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("bolt path is required")
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketCharacters, bucketRules} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: create buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the filesystem path of the database.
func (s *Store) Path() string {
	return s.db.Path()
}

func (s *Store) Characters(ctx context.Context) ([]*character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*character.Character
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCharacters).ForEach(func(k, v []byte) error {
			var c character.Character
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("decode character %s: %w", k, err)
			}
			out = append(out, &c)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}
	// bbolt iterates in key byte order, which is name order.
	return out, nil
}

func (s *Store) AddCharacter(ctx context.Context, c *character.Character) error {
	return s.put(ctx, c, false)
}

func (s *Store) UpdateCharacter(ctx context.Context, c *character.Character) error {
	return s.put(ctx, c, true)
}

func (s *Store) put(ctx context.Context, c *character.Character, replace bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := state.ValidateName(c); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("bolt: encode character %s: %w", c.Name, err)
	}
	key := []byte(c.Name)
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCharacters)
		exists := b.Get(key) != nil
		switch {
		case replace && !exists:
			return errors.NotFoundf("character %s not found", c.Name)
		case !replace && exists:
			return errors.AlreadyExistsf("character %s already exists", c.Name)
		}
		return b.Put(key, data)
	})
}

func (s *Store) RemoveCharacter(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := []byte(name)
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCharacters)
		if len(key) == 0 || b.Get(key) == nil {
			return errors.NotFoundf("character %s not found", name)
		}
		return b.Delete(key)
	})
}

func (s *Store) Rules(ctx context.Context) (*rules.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return state.LoadBook(ctx, func(_ context.Context, t rules.Table) ([]byte, error) {
		var data []byte
		err := s.db.View(func(tx *bbolt.Tx) error {
			if v := tx.Bucket(bucketRules).Get([]byte(t)); v != nil {
				// values are only valid inside the transaction
				data = append([]byte(nil), v...)
			}
			return nil
		})
		return data, err
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
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRules)
		for _, t := range rules.Tables() {
			if err := b.Put([]byte(t), docs[t]); err != nil {
				return fmt.Errorf("bolt: put %s: %w", t, err)
			}
		}
		return nil
	})
}
