package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/draftroom/internal/models"
)

// Config is the service configuration loaded from YAML, with connection
// settings layered in from the environment.
type Config struct {
	Draft struct {
		Rounds             int  `yaml:"rounds"`
		TimePerPickSec     int  `yaml:"time_per_pick_sec"`
		ThirdRoundReversal bool `yaml:"third_round_reversal"`
		LinearOrder        bool `yaml:"linear_order"`
	} `yaml:"draft"`
	Rules models.RosterRules `yaml:"rules"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Draft.Rounds <= 0 {
		config.Draft.Rounds = config.Rules.TotalSlots()
	}
	if config.Draft.TimePerPickSec <= 0 {
		config.Draft.TimePerPickSec = 60
	}

	return &config, nil
}

// DefaultSettings turns the configured draft defaults into room settings for
// newly created rooms.
func (c *Config) DefaultSettings() models.RoomSettings {
	return models.RoomSettings{
		Rounds:             c.Draft.Rounds,
		TimePerPickSec:     c.Draft.TimePerPickSec,
		ThirdRoundReversal: c.Draft.ThirdRoundReversal,
		LinearOrder:        c.Draft.LinearOrder,
		Rules:              c.Rules,
	}
}
