package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/mhtoin/initbot/internal/audioplayer"
	"github.com/mhtoin/initbot/internal/audioplayer/processor"
	"github.com/mhtoin/initbot/internal/audioplayer/source"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/soundboard"
)

// VoiceState is one guild's voice connection and what it is playing.
type VoiceState struct {
	VoiceConnection *discordgo.VoiceConnection
	Streamer        *audioplayer.Streamer
}

// Voice manages voice connections per guild for the soundboard.
type Voice struct {
	session *discordgo.Session
	logger  *zap.Logger

	mu     sync.Mutex
	guilds map[string]*VoiceState
}

var _ soundboard.Voice = (*Voice)(nil)

func NewVoice(session *discordgo.Session, logger *zap.Logger) *Voice {
	return &Voice{session: session, logger: logger, guilds: make(map[string]*VoiceState)}
}

// Join connects to the voice channel userID is in, or the first voice
// channel of the guild.
func (v *Voice) Join(guildID, userID string) error {
	channelID, err := v.channelFor(guildID, userID)
	if err != nil {
		return err
	}

	vc, err := v.session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "error joining voice channel")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.guilds[guildID] = &VoiceState{VoiceConnection: vc}
	v.logger.Info("joined voice channel", zap.String("guild", guildID), zap.String("channel", channelID))
	return nil
}

func (v *Voice) channelFor(guildID, userID string) (string, error) {
	if vs, err := v.session.State.VoiceState(guildID, userID); err == nil && vs.ChannelID != "" {
		return vs.ChannelID, nil
	}
	guild, err := v.session.State.Guild(guildID)
	if err != nil {
		return "", errors.NotFoundf("server %s is not known to the bot", guildID)
	}
	for _, ch := range guild.Channels {
		if ch.Type == discordgo.ChannelTypeGuildVoice {
			return ch.ID, nil
		}
	}
	return "", errors.NotFoundf("the server has no voice channel")
}

func (v *Voice) Leave(guildID string) error {
	v.mu.Lock()
	state, ok := v.guilds[guildID]
	delete(v.guilds, guildID)
	v.mu.Unlock()
	if !ok {
		return nil
	}
	if state.Streamer != nil {
		state.Streamer.Stop()
	}
	return state.VoiceConnection.Disconnect()
}

func (v *Voice) Connected(guildID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.guilds[guildID]
	return ok
}

// Play stops whatever the guild is playing and streams the file at path.
func (v *Voice) Play(guildID, path, title string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	state, ok := v.guilds[guildID]
	if !ok {
		return errors.FailedPreconditionf("not connected to a voice channel")
	}
	if state.Streamer != nil {
		state.Streamer.Stop()
	}

	vc := state.VoiceConnection
	streamer := audioplayer.NewStreamer(vc, vc.OpusSend, v.logger.With(zap.String("guild", guildID)))
	if err := streamer.Play(source.NewFileSource(path, title), processor.NewFfmpegProcessor()); err != nil {
		state.Streamer = nil
		return err
	}
	state.Streamer = streamer
	return nil
}

func (v *Voice) Stop(guildID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if state, ok := v.guilds[guildID]; ok && state.Streamer != nil {
		state.Streamer.Stop()
		state.Streamer = nil
	}
	return nil
}

// Close leaves every voice channel.
func (v *Voice) Close() {
	v.mu.Lock()
	ids := make([]string, 0, len(v.guilds))
	for id := range v.guilds {
		ids = append(ids, id)
	}
	v.mu.Unlock()
	for _, id := range ids {
		if err := v.Leave(id); err != nil {
			v.logger.Warn("leaving voice channel", zap.String("guild", id), zap.Error(err))
		}
	}
}
