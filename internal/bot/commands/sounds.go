package commands

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/soundboard"
)

func board(env *Env, req *Request) (*soundboard.Board, error) {
	if env.Sounds == nil {
		return nil, errors.FailedPreconditionf("The soundboard is not configured")
	}
	if req.GuildID == "" {
		return nil, errors.FailedPreconditionf("The soundboard only works in a server channel")
	}
	return env.Sounds, nil
}

func listSounds(_ context.Context, env *Env, req *Request) error {
	if env.Sounds == nil {
		return errors.FailedPreconditionf("The soundboard is not configured")
	}
	desc := env.Sounds.Manifest().Format()
	if desc == "" {
		desc = "No sounds available"
	}
	return env.embed(req.ChannelID, &discordgo.MessageEmbed{
		Title:       "Soundboard",
		Description: desc,
	})
}

func playSound(_ context.Context, env *Env, req *Request) error {
	b, err := board(env, req)
	if err != nil {
		return err
	}
	if len(req.Args) == 0 {
		return errors.InvalidArgument("Use: sound <name>")
	}
	s, err := b.Play(req.GuildID, strings.Join(req.Args, " "))
	if err != nil {
		return err
	}
	return env.flash(req.ChannelID, ":loudspeaker: Playing "+s.Name, soundTTL)
}

func shush(_ context.Context, env *Env, req *Request) error {
	b, err := board(env, req)
	if err != nil {
		return err
	}
	return b.Stop(req.GuildID)
}

// toggleSoundboard handles "soundboard [on|off]"; without an argument it
// reports the current state.
func toggleSoundboard(_ context.Context, env *Env, req *Request) error {
	b, err := board(env, req)
	if err != nil {
		return err
	}
	if len(req.Args) > 0 {
		switch strings.ToLower(req.Args[0]) {
		case "on":
			err = b.On(req.GuildID, req.UserID)
		case "off":
			err = b.Off(req.GuildID)
		default:
			return errors.InvalidArgument("Use: soundboard [on|off]")
		}
		if err != nil {
			return err
		}
	}
	status := "off"
	if b.IsOn(req.GuildID) {
		status = "on"
	}
	return env.flash(req.ChannelID, ":play_pause: Soundboard is `"+status+"`", soundboardTTL)
}
