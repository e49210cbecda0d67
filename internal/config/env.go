package config

import "github.com/caarlos0/env/v11"

// Env holds process-level overrides parsed from the environment. File-based
// configuration (catalog, rules) stays in the JSON config; the environment
// only points at files and overrides the bind address.
type Env struct {
	ConfigPath string `env:"ELEVATETM_CONFIG" envDefault:"./elevatetm_config.json"`
	DBPath     string `env:"ELEVATETM_DB" envDefault:"./data/elevatetm.db"`
	Address    string `env:"ELEVATETM_ADDR"`
}

// ParseEnv reads the process environment into an Env struct.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
