package soundboard

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mhtoin/initbot/internal/errors"
)

// Voice is the connection side of the soundboard, one connection per
// guild.
type Voice interface {
	// Join connects to the voice channel userID sits in, or the guild's
	// first voice channel.
	Join(guildID, userID string) error
	Leave(guildID string) error
	Connected(guildID string) bool
	// Play replaces whatever is playing in the guild with the file.
	Play(guildID, path, title string) error
	Stop(guildID string) error
}

// Board ties the manifest to a voice connection.
type Board struct {
	manifest *Manifest
	dir      string
	voice    Voice
	logger   *zap.Logger
}

func New(manifest *Manifest, dir string, voice Voice, logger *zap.Logger) *Board {
	if manifest == nil {
		manifest = &Manifest{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{manifest: manifest, dir: dir, voice: voice, logger: logger}
}

func (b *Board) Manifest() *Manifest { return b.manifest }

// On joins a voice channel unless already connected.
func (b *Board) On(guildID, userID string) error {
	if b.voice.Connected(guildID) {
		return nil
	}
	if err := b.voice.Join(guildID, userID); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "unable to join a voice channel")
	}
	b.logger.Info("soundboard on", zap.String("guild", guildID))
	return nil
}

// Off leaves the voice channel.
func (b *Board) Off(guildID string) error {
	if !b.voice.Connected(guildID) {
		return nil
	}
	if err := b.voice.Leave(guildID); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "unable to leave the voice channel")
	}
	b.logger.Info("soundboard off", zap.String("guild", guildID))
	return nil
}

// IsOn reports whether the board is connected in the guild.
func (b *Board) IsOn(guildID string) bool {
	return b.voice.Connected(guildID)
}

// Play resolves name and plays its file, cutting off the current sound.
func (b *Board) Play(guildID, name string) (Sound, error) {
	s, err := b.manifest.Find(name)
	if err != nil {
		return Sound{}, err
	}
	if !b.voice.Connected(guildID) {
		return Sound{}, errors.FailedPreconditionf("the soundboard is off; turn it on with: soundboard on")
	}
	path := filepath.Join(b.dir, s.File)
	if _, err := os.Stat(path); err != nil {
		return Sound{}, errors.NotFoundf("file '%s' not found", s.File)
	}
	if err := b.voice.Play(guildID, path, s.Name); err != nil {
		return Sound{}, errors.WrapWithCode(err, errors.CodeUnavailable, "unable to play "+s.Name)
	}
	b.logger.Debug("playing sound", zap.String("guild", guildID), zap.String("sound", s.Name))
	return s, nil
}

// Stop silences the guild.
func (b *Board) Stop(guildID string) error {
	return b.voice.Stop(guildID)
}
