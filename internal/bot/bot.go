// Package bot connects the command registry to a Discord session.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/mhtoin/initbot/internal/bot/commands"
	"github.com/mhtoin/initbot/internal/dice"
	"github.com/mhtoin/initbot/internal/pkg/clock"
	"github.com/mhtoin/initbot/internal/soundboard"
	"github.com/mhtoin/initbot/internal/state"
)

const defaultCommandTimeout = 10 * time.Second

// Config wires a Bot. Sounds may be nil to run without a soundboard.
type Config struct {
	Token          string
	Prefixes       []string
	CommandTimeout time.Duration
	Store          state.Store
	Sounds         *soundboard.Manifest
	SoundsDir      string
	Logger         *zap.Logger
}

type Bot struct {
	Session  *discordgo.Session
	Prefixes []string

	registry *commands.Registry
	voice    *Voice
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates the session and the command registry. It reads the rule
// tables from the store once; the connection is opened by Start.
func New(ctx context.Context, cfg Config) (*Bot, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("bot needs a state store")
	}
	if len(cfg.Prefixes) == 0 {
		return nil, fmt.Errorf("bot needs at least one command prefix")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.CommandTimeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent

	book, err := cfg.Store.Rules(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rule tables: %w", err)
	}

	b := &Bot{
		Session:  session,
		Prefixes: cfg.Prefixes,
		voice:    NewVoice(session, logger),
		timeout:  timeout,
		logger:   logger,
	}

	var board *soundboard.Board
	if cfg.Sounds != nil {
		board = soundboard.New(cfg.Sounds, cfg.SoundsDir, b.voice, logger)
	}
	b.registry = commands.New(commands.Env{
		Sender: &commands.SessionSender{Session: session},
		Store:  cfg.Store,
		Book:   book,
		Roller: dice.NewRoller(nil, logger),
		Clock:  clock.New(),
		Sounds: board,
		Logger: logger,
	})

	b.Session.AddHandler(b.readyHandler)
	b.Session.AddHandler(b.messageHandler)
	return b, nil
}

func (b *Bot) Start() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	b.logger.Info("bot is running", zap.Strings("prefixes", b.Prefixes))
	return nil
}

func (b *Bot) Stop() {
	b.voice.Close()
	if err := b.Session.Close(); err != nil {
		b.logger.Warn("closing session", zap.Error(err))
	}
}

// Run starts the bot and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	<-ctx.Done()

	// Clean shutdown
	b.Stop()
	return nil
}

func (b *Bot) readyHandler(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("connected", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
	if err := commands.UpdateBotStatus(s, "online", discordgo.ActivityTypeListening, b.Prefixes[0]+"help"); err != nil {
		b.logger.Warn("setting status", zap.Error(err))
	}
}

func (b *Bot) messageHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	name, args, ok := ParseCommand(m.Content, b.Prefixes)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	// Failures are already reported to the channel and logged.
	_ = b.registry.Execute(ctx, name, &commands.Request{
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		UserID:    m.Author.ID,
		User:      m.Author.Username,
		Display:   displayName(m.Message),
		Args:      args,
	})
}

// ParseCommand splits a message into a lowercased command name and its
// arguments. The longest matching prefix wins.
func ParseCommand(content string, prefixes []string) (string, []string, bool) {
	prefix := ""
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(content, p) && len(p) > len(prefix) {
			prefix = p
		}
	}
	if prefix == "" {
		return "", nil, false
	}

	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// displayName prefers the server nickname, then the global display name.
func displayName(m *discordgo.Message) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}
