package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/rpncalc"
)

// config is the resolved configuration of a run.
type config struct {
	LogLevel logrus.Level
	MaxDepth int
	Prompt   string
	History  string
	Format   string
	Echo     bool
	Prelude  []string
}

// loadConfig reads the config file named by file, or the default file if it
// exists, with environment variables and bound flags taking precedence.
func loadConfig(v *viper.Viper, file string) (*config, error) {
	v.SetDefault("log_level", "warning")
	v.SetDefault("max_depth", rpncalc.DefaultMaxDepth)
	v.SetDefault("prompt", "> ")
	v.SetDefault("format", "%g")
	v.SetEnvPrefix("rpncalc")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName(".rpncalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(home)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	lvl, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	c := config{
		LogLevel: lvl,
		MaxDepth: v.GetInt("max_depth"),
		Prompt:   v.GetString("prompt"),
		History:  getStringOrDefault(v, "history", defaultHistory()),
		Format:   v.GetString("format"),
		Echo:     v.GetBool("echo"),
		Prelude:  v.GetStringSlice("prelude"),
	}
	if c.MaxDepth <= 0 {
		return nil, fmt.Errorf("max_depth (%d) must be positive", c.MaxDepth)
	}
	return &c, nil
}

// getStringOrDefault returns the string set for key, or def if nothing sets
// it.
func getStringOrDefault(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rpncalc_history")
}
