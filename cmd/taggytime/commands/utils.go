package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/TianweiOwenLi/TaggyTime/env"
)

// EnvPath resolves the environment file location: the --env flag or TAGGY_ENV
// via viper, falling back to ~/.taggytime/env.yaml.
func EnvPath() string {
	if path := viper.GetString("env"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		fail(fmt.Errorf("resolve home directory: %w", err))
	}
	return filepath.Join(home, ".taggytime", "env.yaml")
}

// loadEnv reads the environment, exiting on failure.
func loadEnv() *env.Env {
	e, err := env.Load(EnvPath())
	if err != nil {
		fail(err)
	}
	return e
}

// saveEnv persists the environment, exiting on failure.
func saveEnv(e *env.Env) {
	if err := e.Save(EnvPath()); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "[taggytime] error: %v\n", err)
	os.Exit(1)
}
