// Package redis stores state in Redis: one JSON value per character, a set
// indexing the names, and one JSON value per rule table.
package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"

	redis "github.com/redis/go-redis/v9"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/rules"
	"github.com/mhtoin/initbot/internal/state"
)

const (
	characterKeyPrefix = "character:"
	characterIndexKey  = "characters"
	rulesKeyPrefix     = "rules:"
)

// Config contains configuration for the Redis store.
type Config struct {
	Client redis.UniversalClient
	// Prefix namespaces every key, letting several bots share a database.
	Prefix string
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// Store is a Redis backed state.Store. It owns the client and closes it.
type Store struct {
	client redis.UniversalClient
	prefix string
}

var _ state.Store = (*Store)(nil)

// New creates a store over an existing client.
func New(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{client: cfg.Client, prefix: cfg.Prefix}, nil
}

// Open connects to addr, which is either host:port or a redis:// URL, and
// checks the connection.
func Open(ctx context.Context, addr string) (*Store, error) {
	if addr == "" {
		return nil, errors.InvalidArgument("redis address is required")
	}
	opts := &redis.Options{Addr: addr}
	if len(addr) > 2 && addr[:2] == "//" {
		parsed, err := redis.ParseURL("redis:" + addr)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
		}
		opts = parsed
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable")
	}
	return New(&Config{Client: client})
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) characterKey(name string) string { return s.prefix + characterKeyPrefix + name }
func (s *Store) indexKey() string { return s.prefix + characterIndexKey }
func (s *Store) rulesKey(t rules.Table) string { return s.prefix + rulesKeyPrefix + string(t) }

func (s *Store) Characters(ctx context.Context) ([]*character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}
	if len(names) == 0 {
		return nil, nil
	}
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = s.characterKey(name)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters")
	}

	out := make([]*character.Character, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// indexed but missing value: a concurrent remove
			continue
		}
		var c character.Character
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal character %s", names[i])
		}
		out = append(out, &c)
	}
	state.SortByName(out)
	return out, nil
}

func (s *Store) AddCharacter(ctx context.Context, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := state.ValidateName(c); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal character data")
	}
	created, err := s.client.SetNX(ctx, s.characterKey(c.Name), data, 0).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to create character")
	}
	if !created {
		return errors.AlreadyExistsf("character %s already exists", c.Name)
	}
	if err := s.client.SAdd(ctx, s.indexKey(), c.Name).Err(); err != nil {
		return errors.Wrapf(err, "failed to index character")
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
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal character data")
	}
	updated, err := s.client.SetXX(ctx, s.characterKey(c.Name), data, 0).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to update character")
	}
	if !updated {
		return errors.NotFoundf("character %s not found", c.Name)
	}
	return nil
}

func (s *Store) RemoveCharacter(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.characterKey(name))
	pipe.SRem(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to remove character")
	}
	if del.Val() == 0 {
		return errors.NotFoundf("character %s not found", name)
	}
	return nil
}

func (s *Store) Rules(ctx context.Context) (*rules.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return state.LoadBook(ctx, func(ctx context.Context, t rules.Table) ([]byte, error) {
		data, err := s.client.Get(ctx, s.rulesKey(t)).Bytes()
		if stderrors.Is(err, redis.Nil) {
			return nil, nil
		}
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
	pipe := s.client.TxPipeline()
	for _, t := range rules.Tables() {
		pipe.Set(ctx, s.rulesKey(t), docs[t], 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to store rules")
	}
	return nil
}
