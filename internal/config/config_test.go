package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Discord: DiscordConfig{
			Token:          "token",
			Prefixes:       "$",
			CommandTimeout: 10 * time.Second,
		},
		State: "json:./",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Sounds: SoundsConfig{Manifest: "sounds/sounds.yaml", Dir: "sounds"},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.RequireToken())
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"$"}, cfg.Discord.PrefixList())
	assert.Equal(t, 10*time.Second, cfg.Discord.CommandTimeout)
	assert.Equal(t, "json:./", cfg.State)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "sounds/sounds.yaml", cfg.Sounds.Manifest)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INITBOT_DISCORD_TOKEN", "secret")
	t.Setenv("INITBOT_DISCORD_PREFIXES", "$, !")
	t.Setenv("INITBOT_STATE", "sqlite:/tmp/initbot.sqlite")
	t.Setenv("INITBOT_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Discord.Token)
	assert.Equal(t, []string{"$", "!"}, cfg.Discord.PrefixList())
	assert.Equal(t, "sqlite:/tmp/initbot.sqlite", cfg.State)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "initbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
discord:
  prefixes: "!"
  command_timeout: 3s
state: bolt:initbot.db
logging:
  level: warn
  format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"!"}, cfg.Discord.PrefixList())
	assert.Equal(t, 3*time.Second, cfg.Discord.CommandTimeout)
	assert.Equal(t, "bolt:initbot.db", cfg.State)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Discord.Prefixes = " , "
	cfg.Discord.CommandTimeout = 0
	cfg.State = "nowhere"
	cfg.Logging.Level = "trace"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"discord.prefixes", "discord.command_timeout", "state", "logging.level"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestRequireToken(t *testing.T) {
	cfg := validConfig()
	cfg.Discord.Token = "  "
	assert.ErrorContains(t, cfg.RequireToken(), "INITBOT_DISCORD_TOKEN")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("INITBOT_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("INITBOT_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("INITBOT_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("INITBOT_TEST_DOTENV"))
}

func TestPrefixListProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefixes := rapid.SliceOfN(rapid.StringMatching(`[!$%?.]{1,2}`), 1, 5).Draw(t, "prefixes")
		d := DiscordConfig{Prefixes: " " + strings.Join(prefixes, ", ") + " "}
		assert.Equal(t, prefixes, d.PrefixList())
	})
}
