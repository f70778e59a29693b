package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/whitelink/pkg/constants"
	"github.com/agentstation/whitelink/pkg/errors"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and an optional config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	Format  string

	// Config file
	ConfigFile string

	// Discord
	DiscordToken   string
	DiscordAppID   string
	DiscordGuildID string
	RoleID         string

	// RCON
	RCONHost     string
	RCONPort     int
	RCONPassword string
	RCONTimeout  time.Duration

	// Storage and serving
	LinksFile       string
	HealthAddr      string
	CleanupCommands bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// envBindings maps config keys to the environment variables read for them,
// in order of preference. The later names are those used by older
// deployments of the bot.
var envBindings = map[string][]string{
	"discord_token":       {"DISCORD_TOKEN"},
	"discord_app_id":      {"DISCORD_APP_ID", "CLIENT_ID"},
	"discord_guild_id":    {"DISCORD_GUILD_ID", "GUILD_ID"},
	"whitelisted_role_id": {"WHITELISTED_ROLE_ID", "WHIETLISTED_ROLE_ID"},
	"rcon_host":           {"RCON_HOST"},
	"rcon_port":           {"RCON_PORT"},
	"rcon_password":       {"RCON_PASSWORD"},
	"rcon_timeout":        {"RCON_TIMEOUT"},
	"links_file":          {"LINKS_FILE"},
	"health_addr":         {"HEALTH_ADDR"},
	"cleanup_commands":    {"CLEANUP_COMMANDS"},
	"log_level":           {"LOG_LEVEL"},
	"log_format":          {"LOG_FORMAT"},
	"log_output":          {"LOG_OUTPUT"},
	"format":              {"WHITELINK_FORMAT"},
}

// LoadConfig loads configuration in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env and .env.local files
// 4. Config file (WHITELINK_CONFIG, or .whitelink.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile(os.Getenv("WHITELINK_CONFIG"))
}

// LoadConfigFile is LoadConfig with an explicit config file. An empty path
// searches the standard locations.
func LoadConfigFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, errors.NewConfigError("env", "failed to bind "+key, err)
		}
	}

	v.SetDefault("rcon_host", constants.DefaultRCONHost)
	v.SetDefault("rcon_port", constants.DefaultRCONPort)
	v.SetDefault("rcon_timeout", constants.DefaultRCONTimeout)
	v.SetDefault("links_file", constants.DefaultLinksFile)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "failed to read "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
		// A missing config file is fine.
		_ = v.ReadInConfig()
	}

	return &Config{
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		DiscordToken:   v.GetString("discord_token"),
		DiscordAppID:   v.GetString("discord_app_id"),
		DiscordGuildID: v.GetString("discord_guild_id"),
		RoleID:         v.GetString("whitelisted_role_id"),

		RCONHost:     v.GetString("rcon_host"),
		RCONPort:     v.GetInt("rcon_port"),
		RCONPassword: v.GetString("rcon_password"),
		RCONTimeout:  v.GetDuration("rcon_timeout"),

		LinksFile:       v.GetString("links_file"),
		HealthAddr:      v.GetString("health_addr"),
		CleanupCommands: v.GetBool("cleanup_commands"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// UpdateFromFlags applies parsed flag values so they take precedence over
// the config file and environment.
func (c *Config) UpdateFromFlags(verbose, quiet bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// ValidateRCON checks the settings needed to reach the game server.
func (c *Config) ValidateRCON() error {
	if c.RCONPassword == "" {
		return errors.NewConfigError("rcon", "RCON_PASSWORD is required", nil)
	}
	if c.RCONHost == "" {
		return errors.NewConfigError("rcon", "RCON_HOST must not be empty", nil)
	}
	if c.RCONPort <= 0 || c.RCONPort > 65535 {
		return errors.NewConfigError("rcon", fmt.Sprintf("RCON_PORT %d is out of range", c.RCONPort), nil)
	}
	if c.RCONTimeout <= 0 {
		return errors.NewConfigError("rcon", "RCON_TIMEOUT must be positive", nil)
	}
	return nil
}

// ValidateDiscord checks the settings needed to run the bot.
func (c *Config) ValidateDiscord() error {
	if c.DiscordToken == "" {
		return errors.NewConfigError("discord", "DISCORD_TOKEN is required", nil)
	}
	if c.DiscordAppID == "" {
		return errors.NewConfigError("discord", "DISCORD_APP_ID (or CLIENT_ID) is required", nil)
	}
	if c.DiscordGuildID == "" {
		return errors.NewConfigError("discord", "DISCORD_GUILD_ID (or GUILD_ID) is required", nil)
	}
	return nil
}

// loadEnvFiles loads .env then .env.local. godotenv never overrides
// variables that are already set, so the real environment wins.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
