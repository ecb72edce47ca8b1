package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/mhtoin/initbot/internal/character"
	"github.com/mhtoin/initbot/internal/dice"
	"github.com/mhtoin/initbot/internal/errors"
)

func newCharacter(ctx context.Context, env *Env, req *Request) error {
	name := strings.Join(req.Args, " ")
	if name == "" {
		return errors.InvalidArgument("Name the new character: new <name>")
	}
	c, err := character.Generate(name, req.User, env.Book, env.Roller)
	if err != nil {
		return err
	}
	if err := env.Store.AddCharacter(ctx, c); err != nil {
		return err
	}
	return showCharacter(env, req.ChannelID, c)
}

// setAttribute handles "set [name] <attribute> <value>".
func setAttribute(ctx context.Context, env *Env, req *Request) error {
	args := req.Args
	if len(args) < 2 {
		return errors.InvalidArgument("Use: set [name] <attribute> <value>")
	}
	value, attr, tokens := args[len(args)-1], args[len(args)-2], args[:len(args)-2]

	chars, err := env.Store.Characters(ctx)
	if err != nil {
		return err
	}
	c, err := character.Find(chars, tokens, req.User)
	if err != nil {
		return err
	}

	oldName := c.Name
	name, err := c.Set(attr, value)
	if err != nil {
		return err
	}

	if c.Name != oldName {
		// Renames are a new record plus removal of the old one.
		if err := env.Store.AddCharacter(ctx, c); err != nil {
			return err
		}
		if err := env.Store.RemoveCharacter(ctx, oldName); err != nil {
			return err
		}
	} else if err := env.Store.UpdateCharacter(ctx, c); err != nil {
		return err
	}

	shown, err := c.Get(name)
	if err != nil {
		return err
	}
	return env.flash(req.ChannelID, fmt.Sprintf("%s's %s is now %s", c.Name, name, shown), confirmTTL)
}

func getCharacter(ctx context.Context, env *Env, req *Request) error {
	c, err := lookup(ctx, env, req)
	if err != nil {
		return err
	}
	return showCharacter(env, req.ChannelID, c)
}

func showCharacter(env *Env, channelID string, c *character.Character) error {
	pretty, err := c.Pretty()
	if err != nil {
		return errors.Wrap(err, "rendering character")
	}
	return env.reply(channelID, pretty)
}

func listCharacters(ctx context.Context, env *Env, req *Request) error {
	chars, err := env.Store.Characters(ctx)
	if err != nil {
		return err
	}
	if len(chars) == 0 {
		return env.reply(req.ChannelID, "No characters registered")
	}
	names := make([]string, len(chars))
	for i, c := range chars {
		names[i] = fmt.Sprintf("**%s** (_%s_)", c.Name, c.User)
	}
	return env.reply(req.ChannelID, strings.Join(names, ", "))
}

func removeCharacter(ctx context.Context, env *Env, req *Request) error {
	c, err := lookup(ctx, env, req)
	if err != nil {
		return err
	}
	if err := env.Store.RemoveCharacter(ctx, c.Name); err != nil {
		return err
	}
	return env.flash(req.ChannelID, "Removed character "+c.Name, confirmTTL)
}

// play activates a character and parks every other character of its
// owner. Without a name the caller must own exactly one character.
func play(ctx context.Context, env *Env, req *Request) error {
	chars, err := env.Store.Characters(ctx)
	if err != nil {
		return err
	}

	var c *character.Character
	if len(req.Args) == 0 {
		owned := character.OwnedBy(chars, req.User)
		if len(owned) != 1 {
			return errors.InvalidArgumentf("%s owns %d characters; name the one to play", req.User, len(owned))
		}
		c = owned[0]
	} else if c, err = character.FindByName(chars, strings.Join(req.Args, " ")); err != nil {
		return err
	}

	for _, other := range character.OwnedBy(chars, c.User) {
		if other.Name == c.Name || !other.Active {
			continue
		}
		other.Active = false
		if err := env.Store.UpdateCharacter(ctx, other); err != nil {
			return err
		}
	}
	c.Active = true
	if err := env.Store.UpdateCharacter(ctx, c); err != nil {
		return err
	}
	return env.flash(req.ChannelID, c.Name+" is now active", confirmTTL)
}

func park(ctx context.Context, env *Env, req *Request) error {
	c, err := lookup(ctx, env, req)
	if err != nil {
		return err
	}
	c.Active = false
	if err := env.Store.UpdateCharacter(ctx, c); err != nil {
		return err
	}
	return env.flash(req.ChannelID, c.Name+" is now parked", confirmTTL)
}

// luck rolls under the character's luck score. The last argument may be
// the dice to roll, d20 by default.
func luck(ctx context.Context, env *Env, req *Request) error {
	args := req.Args
	d := d20
	if len(args) > 0 && dice.IsNotation(args[len(args)-1]) {
		var err error
		if d, err = dice.Parse(args[len(args)-1]); err != nil {
			return err
		}
		args = args[:len(args)-1]
	}

	chars, err := env.Store.Characters(ctx)
	if err != nil {
		return err
	}
	c, err := character.Find(chars, args, req.User)
	if err != nil {
		return err
	}
	if c.Luck == nil {
		return errors.FailedPreconditionf("%s has no luck score; set it with: set luck <score>", c.Name)
	}

	r, err := env.Roller.RollOne(d)
	if err != nil {
		return err
	}
	score := *c.Luck
	outcome, side, diff := "passed", "under", score-r
	if r > score {
		outcome, side, diff = "failed", "over", r-score
	}
	mod, _ := c.LuckModifier(env.Book)
	return env.reply(req.ChannelID, fmt.Sprintf("%s rolled %d and %s their luck check by %d %s (their luck is %d (%+d))",
		c.Name, r, outcome, diff, side, score, mod))
}

// lookup resolves the request arguments to a character.
func lookup(ctx context.Context, env *Env, req *Request) (*character.Character, error) {
	chars, err := env.Store.Characters(ctx)
	if err != nil {
		return nil, err
	}
	return character.Find(chars, req.Args, req.User)
}
