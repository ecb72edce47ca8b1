// Package jsonfile stores state as JSON documents in a directory:
// characters.json plus one optional file per rule table.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/rules"
	"github.com/mhtoin/initbot/internal/state"
)

// CharactersFile is the name of the character document.
const CharactersFile = "characters.json"

type charactersDoc struct {
	Characters []*character.Character `json:"characters"`
}

// Store keeps every document in dir. Each operation reads and rewrites the
// files it touches.
type Store struct {
	dir string
}

var _ state.Store = (*Store)(nil)

// Open returns a store over an existing directory.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.InvalidArgument("state directory is required")
	}
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition, fmt.Sprintf("state directory %s is not accessible", dir))
	}
	if !info.IsDir() {
		return nil, errors.FailedPreconditionf("state path %s is not a directory", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the state directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) Close() error { return nil }

func (s *Store) Characters(ctx context.Context) ([]*character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	chars, err := s.load()
	if err != nil {
		return nil, err
	}
	state.SortByName(chars)
	return chars, nil
}

func (s *Store) AddCharacter(ctx context.Context, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := state.ValidateName(c); err != nil {
		return err
	}
	chars, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(chars, c.Name) >= 0 {
		return errors.AlreadyExistsf("character %s already exists", c.Name)
	}
	return s.save(append(chars, c))
}

func (s *Store) UpdateCharacter(ctx context.Context, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := state.ValidateName(c); err != nil {
		return err
	}
	chars, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(chars, c.Name)
	if i < 0 {
		return errors.NotFoundf("character %s not found", c.Name)
	}
	chars[i] = c
	return s.save(chars)
}

func (s *Store) RemoveCharacter(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	chars, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(chars, name)
	if i < 0 {
		return errors.NotFoundf("character %s not found", name)
	}
	return s.save(append(chars[:i], chars[i+1:]...))
}

func (s *Store) Rules(ctx context.Context) (*rules.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return state.LoadBook(ctx, func(_ context.Context, t rules.Table) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(s.dir, t.FileName()))
		if errors.Is(err, fs.ErrNotExist) {
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
	for _, t := range rules.Tables() {
		if err := writeFile(filepath.Join(s.dir, t.FileName()), docs[t]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) load() ([]*character.Character, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, CharactersFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CharactersFile, err)
	}
	var doc charactersDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, CharactersFile+" is corrupt")
	}
	return doc.Characters, nil
}

func (s *Store) save(chars []*character.Character) error {
	if chars == nil {
		chars = []*character.Character{}
	}
	data, err := json.MarshalIndent(charactersDoc{Characters: chars}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", CharactersFile, err)
	}
	return writeFile(filepath.Join(s.dir, CharactersFile), data)
}

// writeFile replaces path atomically so a crash never leaves half a
// document behind.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func indexOf(chars []*character.Character, name string) int {
	for i, c := range chars {
		if c.Name == name {
			return i
		}
	}
	return -1
}
