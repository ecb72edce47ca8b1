// Package config loads the bot configuration from an optional YAML file,
// a .env file and INITBOT_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. INITBOT_DISCORD_TOKEN.
const EnvPrefix = "INITBOT"

// DiscordConfig holds the chat connection settings.
type DiscordConfig struct {
	Token string `mapstructure:"token"`
	// Prefixes is a comma separated list of command prefixes.
	Prefixes string `mapstructure:"prefixes"`
	// CommandTimeout bounds the work one command may do.
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// PrefixList splits Prefixes, dropping empty entries.
func (d DiscordConfig) PrefixList() []string {
	var out []string
	for _, p := range strings.Split(d.Prefixes, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SoundsConfig locates the soundboard files.
type SoundsConfig struct {
	Manifest string `mapstructure:"manifest"`
	Dir      string `mapstructure:"dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Discord DiscordConfig `mapstructure:"discord"`
	// State is the store source, <scheme>:<location>.
	State   string        `mapstructure:"state"`
	Logging LoggingConfig `mapstructure:"logging"`
	Sounds  SoundsConfig  `mapstructure:"sounds"`
}

// Validate checks all configuration invariants except the token, which
// only running the bot needs.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if len(c.Discord.PrefixList()) == 0 {
		errs = append(errs, "discord.prefixes must name at least one prefix")
	}
	if c.Discord.CommandTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("discord.command_timeout must be positive, got %s", c.Discord.CommandTimeout))
	}
	if scheme, _, ok := strings.Cut(c.State, ":"); !ok || scheme == "" {
		errs = append(errs, fmt.Sprintf("state must look like <scheme>:<location>, got %q", c.State))
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RequireToken reports a missing Discord token.
func (c Config) RequireToken() error {
	if strings.TrimSpace(c.Discord.Token) == "" {
		return fmt.Errorf("discord.token must be set (%s_DISCORD_TOKEN)", EnvPrefix)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// LoadDotEnv copies the variables of the given .env files into the process
// environment without overriding what is already set. Missing files are
// skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the optional configuration file at path, applies environment
// variable overrides, and validates the result.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.prefixes", "$")
	v.SetDefault("discord.command_timeout", "10s")

	v.SetDefault("state", "json:./")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("sounds.manifest", "sounds/sounds.yaml")
	v.SetDefault("sounds.dir", "sounds")
}
