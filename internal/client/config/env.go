package config

import "github.com/caarlos0/env/v6"

// EnvPrefix is prepended to every variable name declared in Config tags.
const EnvPrefix = "POKEKEEPER_"

// parseEnv overlays cfg with POKEKEEPER_* variables. Unset variables leave
// the current values untouched.
func parseEnv(cfg *Config) error {
	return env.Parse(cfg, env.Options{Prefix: EnvPrefix})
}
