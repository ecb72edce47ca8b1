package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/dice"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/initiative"
	"github.com/mhtoin/initbot/internal/match"
)

const inactiveNote = " (note that this character is not currently active; you may want to activate this character with the 'play' command or maybe you meant a different character?)"

var d20 = dice.D(20)

// setInitiative handles "init [name] [n]" and "init n [name]". Without n
// the initiative is rolled as d20 plus the character's modifier. A named
// character that does not exist yet is created for the caller.
func setInitiative(ctx context.Context, env *Env, req *Request) error {
	args := req.Args
	if len(args) > 4 {
		return errors.InvalidArgument("Too many arguments; use: init [name] [initiative]")
	}

	var value *int
	switch {
	case len(args) > 0 && match.IsInt(args[len(args)-1]):
		n, err := parseInitiative(args[len(args)-1])
		if err != nil {
			return err
		}
		value, args = &n, args[:len(args)-1]
	case len(args) > 0 && match.IsInt(args[0]):
		n, err := parseInitiative(args[0])
		if err != nil {
			return err
		}
		value, args = &n, args[1:]
	}

	chars, err := env.Store.Characters(ctx)
	if err != nil {
		return err
	}
	c, created, err := findOrCreate(chars, args, req.User)
	if err != nil {
		return err
	}

	if value == nil {
		mod, ok, err := c.InitiativeModifier(env.Book)
		if err != nil {
			return err
		}
		if !ok {
			return errors.FailedPreconditionf("Character has no initiative modifier. Set their agility and other character attributes that affect initiative with the set command")
		}
		r, err := env.Roller.RollOne(d20)
		if err != nil {
			return err
		}
		n := r + mod
		value = &n
	}

	c.Initiative = character.Int(*value)
	now := env.Clock.Now().Unix()
	c.InitiativeTime = &now
	if created {
		err = env.Store.AddCharacter(ctx, c)
	} else {
		err = env.Store.UpdateCharacter(ctx, c)
	}
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("%s's initiative is now %d", c.Name, *value)
	if !c.Active {
		msg += inactiveNote
	}
	return env.flash(req.ChannelID, msg, confirmTTL)
}

func parseInitiative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n > initiative.MaxInitiative || n < -initiative.MaxInitiative {
		return 0, errors.InvalidArgumentf("initiative is out of range: %s", s)
	}
	return n, nil
}

// findOrCreate resolves tokens like character.Find, but returns a new
// character owned by user when a name matches nothing.
func findOrCreate(chars []*character.Character, tokens []string, user string) (*character.Character, bool, error) {
	name := strings.Join(tokens, " ")
	c, err := character.Find(chars, tokens, user)
	if err == nil {
		return c, false, nil
	}
	if name != "" && errors.IsNoMatch(err) {
		return character.New(name, user), true, nil
	}
	return nil, false, err
}

func initiativeOrder(ctx context.Context, env *Env, req *Request) error {
	chars, err := env.Store.Characters(ctx)
	if err != nil {
		return err
	}
	recent := initiative.Recent(chars, env.Clock.Now(), initiative.Window)
	ranked, err := initiative.Rank(recent, env.Book, env.Roller.Source())
	if err != nil {
		return err
	}

	var lines []string
	for _, c := range ranked {
		if c.Initiative == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d: **%s** (*%s*)", *c.Initiative, c.Name, c.User))
	}
	desc := strings.Join(lines, "\n")
	if desc == "" {
		desc = "Nobody has rolled initiative in the last 24 hours"
	}
	return env.embed(req.ChannelID, &discordgo.MessageEmbed{
		Title:       "Initiative Order",
		Description: desc,
	})
}
