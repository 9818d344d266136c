package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the server settings. Values come from an optional YAML
// file, with environment variables taking precedence.
type Config struct {
	// ListenAddr is the address of the line-protocol TCP listener.
	ListenAddr string `yaml:"listen_addr"`
	// WSListenAddr is the address of the WebSocket listener.
	WSListenAddr string `yaml:"ws_listen_addr"`

	SmallBlind      float64 `yaml:"small_blind"`
	BigBlind        float64 `yaml:"big_blind"`
	StartingBalance float64 `yaml:"starting_balance"`
	// PlayersToStart is the table size at which a game begins.
	PlayersToStart int `yaml:"players_to_start"`

	TurnTimeout time.Duration `yaml:"turn_timeout"`
}

// Default returns the built-in settings: the original 5/10 blinds,
// 100-chip buy-in and 15-second turn clock.
func Default() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		WSListenAddr:    "127.0.0.1:8081",
		SmallBlind:      5,
		BigBlind:        10,
		StartingBalance: 100,
		PlayersToStart:  2,
		TurnTimeout:     15 * time.Second,
	}
}

// Load reads settings from the YAML file at path, layered over the
// defaults. An empty path skips the file and returns defaults plus
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "reading config file %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing config file %s", path)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HOLDEM_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("HOLDEM_WS_LISTEN_ADDR"); v != "" {
		c.WSListenAddr = v
	}
	if v := os.Getenv("HOLDEM_SMALL_BLIND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.SmallBlind = f
		}
	}
	if v := os.Getenv("HOLDEM_BIG_BLIND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.BigBlind = f
		}
	}
	if v := os.Getenv("HOLDEM_STARTING_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.StartingBalance = f
		}
	}
	if v := os.Getenv("HOLDEM_TURN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.TurnTimeout = d
		}
	}
}
