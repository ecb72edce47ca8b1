// Package commands implements the chat commands of the bot and the
// registry that dispatches them.
package commands

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/mhtoin/initbot/internal/dice"
	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/match"
	"github.com/mhtoin/initbot/internal/pkg/clock"
	"github.com/mhtoin/initbot/internal/rules"
	"github.com/mhtoin/initbot/internal/soundboard"
	"github.com/mhtoin/initbot/internal/state"
)

const (
	maxMessageLength = 2000

	errorTTL      = 5 * time.Second
	confirmTTL    = 3 * time.Second
	soundTTL      = 10 * time.Second
	soundboardTTL = 5 * time.Second
)

// Handler runs one command. Errors are reported back to the channel by the
// registry.
type Handler func(ctx context.Context, env *Env, req *Request) error

type Command struct {
	Name        string
	Usage       string
	Description string
	Handler     Handler
}

// Request is one parsed chat command.
type Request struct {
	ChannelID string
	GuildID   string
	UserID    string
	// User is the account name. Characters are owned by it.
	User string
	// Display is the name shown in replies.
	Display string
	Args    []string
}

// Env is everything a command can reach.
type Env struct {
	Sender Sender
	Store  state.Store
	Book   *rules.Book
	Roller *dice.Roller
	Clock  clock.Clock
	Sounds *soundboard.Board
	Logger *zap.Logger
	// After runs f once d has passed. Defaults to time.AfterFunc.
	After func(d time.Duration, f func())
}

// Registry maps command names to handlers and runs them one at a time.
type Registry struct {
	env      *Env
	mu       sync.Mutex
	commands map[string]Command
	order    []string
}

// New returns a registry holding every built-in command.
func New(env Env) *Registry {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	if env.Clock == nil {
		env.Clock = clock.New()
	}
	if env.Roller == nil {
		env.Roller = dice.NewRoller(nil, env.Logger)
	}
	if env.Book == nil {
		env.Book = rules.MustDefault()
	}
	if env.After == nil {
		env.After = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}

	r := &Registry{env: &env, commands: make(map[string]Command)}
	for _, cmd := range builtins() {
		r.Register(cmd)
	}
	r.Register(Command{
		Name:        "help",
		Usage:       "help [command]",
		Description: "List commands or show how to use one",
		Handler:     r.help,
	})
	return r
}

// Register adds cmd, replacing any command of the same name.
func (r *Registry) Register(cmd Command) {
	name := strings.ToLower(cmd.Name)
	if _, ok := r.commands[name]; !ok {
		r.order = append(r.order, name)
	}
	r.commands[name] = cmd
}

// Names lists command names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Execute runs the named command. Unknown names are ignored. A failing
// command gets its error posted to the channel and returned.
func (r *Registry) Execute(ctx context.Context, name string, req *Request) error {
	cmd, ok := r.Lookup(name)
	if !ok {
		r.env.Logger.Debug("unknown command", zap.String("command", name), zap.String("user", req.User))
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	err := cmd.Handler(ctx, r.env, req)
	fields := []zap.Field{
		zap.String("command", cmd.Name),
		zap.String("user", req.User),
		zap.String("channel", req.ChannelID),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		r.env.report(req.ChannelID, err)
		r.env.Logger.Info("command failed", append(fields, zap.Error(err))...)
		return err
	}
	r.env.Logger.Info("command", fields...)
	return nil
}

func (r *Registry) help(_ context.Context, env *Env, req *Request) error {
	if len(req.Args) == 0 {
		lines := make([]string, 0, len(r.order))
		for _, name := range r.order {
			lines = append(lines, "`"+r.commands[name].Usage+"` "+r.commands[name].Description)
		}
		return env.reply(req.ChannelID, strings.Join(lines, "\n"))
	}

	name, err := match.String(req.Args[0], r.order)
	if err != nil {
		return err
	}
	cmd := r.commands[name]
	return env.reply(req.ChannelID, "Usage: `"+cmd.Usage+"`\n"+cmd.Description)
}

// report posts err to the channel. Internal failures are logged and shown
// only as a generic message.
func (e *Env) report(channelID string, err error) {
	msg := errors.GetMessage(err)
	if !errors.GetCode(err).UserFacing() {
		e.Logger.Error("command error", zap.Error(err))
		msg = "Something went wrong"
	}
	if ferr := e.flash(channelID, msg, errorTTL); ferr != nil {
		e.Logger.Warn("unable to report error", zap.Error(ferr))
	}
}

// reply sends content, split into as many messages as needed.
func (e *Env) reply(channelID, content string) error {
	for _, part := range splitMessage(content, maxMessageLength) {
		if _, err := e.Sender.Send(channelID, part); err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "sending reply")
		}
	}
	return nil
}

// flash sends a message that is deleted after ttl.
func (e *Env) flash(channelID, content string, ttl time.Duration) error {
	id, err := e.Sender.Send(channelID, truncate(content, maxMessageLength))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "sending reply")
	}
	e.After(ttl, func() {
		if err := e.Sender.Delete(channelID, id); err != nil {
			e.Logger.Debug("unable to delete message", zap.String("message", id), zap.Error(err))
		}
	})
	return nil
}

func (e *Env) embed(channelID string, embed *discordgo.MessageEmbed) error {
	if _, err := e.Sender.SendEmbed(channelID, embed); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "sending reply")
	}
	return nil
}

// splitMessage breaks content at line ends into parts of at most limit
// bytes. Lines longer than limit are cut at rune boundaries.
func splitMessage(content string, limit int) []string {
	var parts []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			parts = append(parts, b.String())
			b.Reset()
		}
	}

	for _, line := range strings.Split(content, "\n") {
		for len(line) > limit {
			flush()
			head := truncate(line, limit)
			parts = append(parts, head)
			line = line[len(head):]
		}
		if b.Len() > 0 && b.Len()+1+len(line) > limit {
			flush()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	flush()
	return parts
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// StatusUpdater is the part of a session that sets presence.
type StatusUpdater interface {
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
}

// UpdateBotStatus sets the bot's presence to a single activity.
func UpdateBotStatus(s StatusUpdater, status string, activityType discordgo.ActivityType, activityName string) error {
	activity := discordgo.Activity{
		Name: activityName,
		Type: activityType,
	}

	updateData := discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{&activity},
		Status:     status,
		AFK:        false,
	}

	return s.UpdateStatusComplex(updateData)
}
