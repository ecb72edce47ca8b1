package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/match"
	"github.com/mhtoin/initbot/internal/rules"
)

const maxFieldLength = 1024

func ability(_ context.Context, env *Env, req *Request) error {
	if len(req.Args) != 1 {
		return errors.InvalidArgument("Use: abl <ability>")
	}
	a, err := env.Book.Ability(req.Args[0])
	if err != nil {
		return err
	}
	return env.reply(req.ChannelID, "**"+a.Name+"**\n"+a.Description)
}

// abilities shows luck in the description since its text is longer than
// an embed field allows.
func abilities(_ context.Context, env *Env, req *Request) error {
	embed := &discordgo.MessageEmbed{Title: "Abilities"}
	for _, a := range env.Book.Abilities {
		if strings.EqualFold(a.Name, "luck") {
			embed.Description = "**" + a.Name + "**\n" + a.Description
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  a.Name,
			Value: truncate(a.Description, maxFieldLength),
		})
	}
	return env.embed(req.ChannelID, embed)
}

func modifier(_ context.Context, env *Env, req *Request) error {
	if len(req.Args) != 1 || !match.IsInt(req.Args[0]) {
		return errors.InvalidArgument("Use: mod <score>")
	}
	score, err := strconv.Atoi(req.Args[0])
	if err != nil {
		return errors.InvalidArgumentf("score is out of range: %s", req.Args[0])
	}
	m, err := env.Book.Modifier(score)
	if err != nil {
		return err
	}
	return env.reply(req.ChannelID, formatModifier(m))
}

func modifiers(_ context.Context, env *Env, req *Request) error {
	lines := make([]string, len(env.Book.Modifiers))
	for i, m := range env.Book.Modifiers {
		lines[i] = formatModifier(m)
	}
	return env.reply(req.ChannelID, strings.Join(lines, "\n"))
}

func formatModifier(m rules.AbilityModifier) string {
	return fmt.Sprintf("Score %d: modifier %+d, spells %+d, max spell level %d", m.Score, m.Mod, m.Spells, m.MaxSpellLevel)
}

// augur shows the augur for a roll, or a random one.
func augur(_ context.Context, env *Env, req *Request) error {
	if len(req.Args) > 0 {
		if !match.IsInt(req.Args[0]) {
			return errors.InvalidArgument("Use: augur [roll]")
		}
		n, err := strconv.Atoi(req.Args[0])
		if err != nil {
			return errors.InvalidArgumentf("roll is out of range: %s", req.Args[0])
		}
		a, err := env.Book.Augur(n)
		if err != nil {
			return err
		}
		return env.reply(req.ChannelID, formatAugur(a))
	}

	if len(env.Book.Augurs) == 0 {
		return errors.NotFound("No augurs available")
	}
	i, err := env.Roller.Pick(len(env.Book.Augurs))
	if err != nil {
		return err
	}
	return env.reply(req.ChannelID, formatAugur(env.Book.Augurs[i]))
}

func augurs(_ context.Context, env *Env, req *Request) error {
	lines := make([]string, len(env.Book.Augurs))
	for i, a := range env.Book.Augurs {
		lines[i] = formatAugur(a)
	}
	return env.reply(req.ChannelID, strings.Join(lines, "\n"))
}

func formatAugur(a rules.Augur) string {
	return fmt.Sprintf("%d: %s", a.Roll, a.Description)
}

func occupations(_ context.Context, env *Env, req *Request) error {
	lines := make([]string, len(env.Book.Occupations))
	for i, o := range env.Book.Occupations {
		lines[i] = fmt.Sprintf("%s: **%s** (%s; %s)", o.Roll, o.Name, o.Weapon, o.Goods)
	}
	return env.reply(req.ChannelID, strings.Join(lines, "\n"))
}

func classes(_ context.Context, env *Env, req *Request) error {
	return env.reply(req.ChannelID, strings.Join(env.Book.ClassNames(), ", "))
}

func class(_ context.Context, env *Env, req *Request) error {
	if len(req.Args) == 0 {
		return errors.InvalidArgument("Use: cls <class>")
	}
	c, err := env.Book.Class(strings.Join(req.Args, " "))
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "rendering class")
	}
	_, err = env.Sender.Send(req.ChannelID, truncate(string(data), maxMessageLength))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "sending reply")
	}
	return nil
}

func crit(_ context.Context, env *Env, req *Request) error {
	if len(req.Args) != 2 || !match.IsInt(req.Args[0]) || !match.IsInt(req.Args[1]) {
		return errors.InvalidArgument("Use: crit <table> <roll>")
	}
	table, err := strconv.Atoi(req.Args[0])
	if err != nil {
		return errors.InvalidArgumentf("table is out of range: %s", req.Args[0])
	}
	roll, err := strconv.Atoi(req.Args[1])
	if err != nil {
		return errors.InvalidArgumentf("roll is out of range: %s", req.Args[1])
	}
	c, err := env.Book.Crit(table, roll)
	if err != nil {
		return err
	}
	return env.reply(req.ChannelID, c.Effect)
}

func levels(_ context.Context, env *Env, req *Request) error {
	thresholds := rules.XPThresholds()
	lines := make([]string, len(thresholds))
	for lvl, xp := range thresholds {
		lines[lvl] = fmt.Sprintf("Level %d: %d XP", lvl, xp)
	}
	return env.reply(req.ChannelID, strings.Join(lines, "\n"))
}

var tarotCards = []string{
	"TheFool", "TheMagician", "TheHighPriestess", "TheEmpress", "TheEmperor",
	"TheHierophant", "TheLovers", "TheChariot", "Strength", "TheHermit",
	"WheelofFortune", "Justice", "TheHangedMan", "Death", "Temperance",
	"TheDevil", "TheTower", "TheStar", "TheMoon", "TheSun", "Judgement",
	"TheWorld",
}

func tarot(_ context.Context, env *Env, req *Request) error {
	i, err := env.Roller.Pick(len(tarotCards))
	if err != nil {
		return err
	}
	return env.reply(req.ChannelID, "https://randomtarotcard.com/"+tarotCards[i]+".jpg")
}
