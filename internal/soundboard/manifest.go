// Package soundboard plays short named sound effects into a guild's voice
// channel.
package soundboard

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/match"
)

// Sound is one manifest entry. File is relative to the sounds directory.
type Sound struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	File        string `yaml:"file"`
	Category    string `yaml:"category"`
}

// Manifest lists the available sounds in display order.
type Manifest struct {
	Sounds []Sound `yaml:"sounds"`
}

// LoadManifest reads a YAML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sound manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates a manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "sound manifest is not valid YAML")
	}

	seen := make(map[string]bool, len(m.Sounds))
	for i, s := range m.Sounds {
		if strings.TrimSpace(s.Name) == "" {
			return nil, errors.InvalidArgumentf("sound %d has no name", i+1)
		}
		if strings.TrimSpace(s.File) == "" {
			return nil, errors.InvalidArgumentf("sound %s has no file", s.Name)
		}
		key := match.Normalize(s.Name)
		if seen[key] {
			return nil, errors.InvalidArgumentf("sound %s is listed twice", s.Name)
		}
		seen[key] = true
	}
	return &m, nil
}

// Find resolves a sound by exact name or unique prefix.
func (m *Manifest) Find(name string) (Sound, error) {
	return match.ExactOrUniquePrefix(name, m.Sounds, func(s Sound) string { return s.Name })
}

// Format renders the manifest one sound per line.
func (m *Manifest) Format() string {
	lines := make([]string, len(m.Sounds))
	for i, s := range m.Sounds {
		lines[i] = fmt.Sprintf("` %s  ` %s", s.Name, s.Description)
	}
	return strings.Join(lines, "\n")
}
