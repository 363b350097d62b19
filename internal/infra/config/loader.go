package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FANTASY_"

// Variables sin prefijo que ya usaban los despliegues del bot.
var legacyEnv = map[string]string{
	"DATABASE_URL":      "database_url",
	"DISCORD_BOT_TOKEN": "discord_token",
	"DISCORD_GUILD_ID":  "discord_guild",
	"ADMIN_ROLE_IDS":    "admin_role_ids",
	"HTTP_ADDR":         "http_addr",
}

// Load arma la config por capas (menor a mayor prioridad):
//  1. Defaults()
//  2. YAML si FANTASY_CONFIG apunta a un archivo
//  3. variables sin prefijo (DATABASE_URL, DISCORD_BOT_TOKEN, ...)
//  4. env con prefijo FANTASY_ (FANTASY_SUB_SLOTS -> sub_slots)
//
// Un .env en el directorio actual se carga antes, sin pisar el entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, loadErr(path, err)
		}
	}

	for name, key := range legacyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			if err := k.Set(key, v); err != nil {
				return nil, loadErr(name, err)
			}
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, loadErr("env", err)
	}

	cfg := *Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, loadErr("unmarshal", err)
	}
	cfg.AdminRoleIDs = splitIDs(cfg.AdminRoleIDs)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitIDs acepta tanto una lista YAML como "a, b,c" desde env.
func splitIDs(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
