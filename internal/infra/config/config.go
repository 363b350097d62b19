// Package config carga la configuración del bot y de las Lambdas.
package config

import (
	"time"
)

type Config struct {
	DatabaseURL  string   `koanf:"database_url"`
	DiscordToken string   `koanf:"discord_token"`
	DiscordGuild string   `koanf:"discord_guild"`
	AdminRoleIDs []string `koanf:"admin_role_ids"`

	HTTPAddr     string `koanf:"http_addr"` // opcional, default :8080
	UploadSecret string `koanf:"upload_secret"`

	LogLevel  string `koanf:"log_level"`
	LogPretty bool   `koanf:"log_pretty"`

	// Liga
	DraftRounds int  `koanf:"draft_rounds"`
	SubSlots    int  `koanf:"sub_slots"`
	SkipDraft   bool `koanf:"skip_draft"`

	// Fetch automático de eventos trackeados
	FetchInterval   time.Duration `koanf:"fetch_interval"`
	FetchMatchDelay time.Duration `koanf:"fetch_match_delay"`
	EpochInterval   time.Duration `koanf:"epoch_interval"`

	VLRBaseURL string `koanf:"vlr_base_url"`
	VLRAPIURL  string `koanf:"vlr_api_url"`
}

// Defaults devuelve la configuración base antes de archivo y env.
func Defaults() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		DraftRounds:     7,
		SubSlots:        2,
		FetchInterval:   time.Hour,
		FetchMatchDelay: 2 * time.Second,
		EpochInterval:   30 * time.Second,
		VLRBaseURL:      "https://www.vlr.gg",
		VLRAPIURL:       "https://vlrggapi.vercel.app",
	}
}

func (c *Config) validate() error {
	switch {
	case c.DatabaseURL == "":
		return invalid("database_url is required (DATABASE_URL)")
	case c.DraftRounds < 1:
		return invalid("draft_rounds must be >= 1, got %d", c.DraftRounds)
	case c.SubSlots < 0:
		return invalid("sub_slots must be >= 0, got %d", c.SubSlots)
	case c.FetchInterval <= 0:
		return invalid("fetch_interval must be positive")
	case c.FetchMatchDelay < 0:
		return invalid("fetch_match_delay cannot be negative")
	case c.EpochInterval <= 0:
		return invalid("epoch_interval must be positive")
	}
	return nil
}

// RequireBot valida lo que sólo necesita el proceso de Discord.
func (c *Config) RequireBot() error {
	if c.DiscordToken == "" {
		return invalid("discord_token is required (DISCORD_BOT_TOKEN)")
	}
	if c.DiscordGuild == "" {
		return invalid("discord_guild is required (DISCORD_GUILD_ID)")
	}
	return nil
}
