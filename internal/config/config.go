// Package config loads settings for the dice command and server.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/dice"
)

// EnvPrefix is the prefix of environment variables that override settings.
// DICE_PARSE_MAX_DIGITS sets parse.max_digits, and so on.
const EnvPrefix = "DICE_"

// Config is the resolved configuration.
type Config struct {
	Server struct {
		Address string `koanf:"address"`
	} `koanf:"server"`
	Roll struct {
		// MaxDice is the most dice a single expression may roll.
		MaxDice int64 `koanf:"max_dice"`
	} `koanf:"roll"`
	Parse struct {
		MaxDigits    int  `koanf:"max_digits"`
		MaxNesting   int  `koanf:"max_nesting"`
		ShuntingYard bool `koanf:"shunting_yard"`
	} `koanf:"parse"`
	Stats struct {
		Iterations int `koanf:"iterations"`
	} `koanf:"stats"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.address":      ":8080",
		"roll.max_dice":       1000,
		"parse.max_digits":    dice.MaxLiteralDigits,
		"parse.max_nesting":   dice.MaxNestingDepth,
		"parse.shunting_yard": false,
		"stats.iterations":    10000,
		"log.level":           "info",
	}
}

// Load resolves configuration from defaults, then the YAML file at path if
// path is not empty, then the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("couldn't load defaults: %w", err)
	}
	if path != "" {
		m, err := readYAML(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
			return nil, fmt.Errorf("couldn't load %s: %w", path, err)
		}
	}
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't load environment: %w", err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("couldn't decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readYAML(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read config: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", path, err)
	}
	return m, nil
}

// envKey maps DICE_PARSE_MAX_DIGITS to parse.max_digits. Only the first
// underscore separates the section from the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func (cfg *Config) validate() error {
	var errs []error
	if cfg.Roll.MaxDice <= 0 {
		errs = append(errs, fmt.Errorf("roll.max_dice must be positive, not %d", cfg.Roll.MaxDice))
	}
	if cfg.Parse.MaxDigits <= 0 {
		errs = append(errs, fmt.Errorf("parse.max_digits must be positive, not %d", cfg.Parse.MaxDigits))
	}
	if cfg.Parse.MaxNesting <= 0 {
		errs = append(errs, fmt.Errorf("parse.max_nesting must be positive, not %d", cfg.Parse.MaxNesting))
	}
	if cfg.Stats.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("stats.iterations must be positive, not %d", cfg.Stats.Iterations))
	}
	if _, err := cfg.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the configured log level.
func (cfg *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}

// CheckDice returns an error if e rolls more dice than the configuration
// allows.
func (cfg *Config) CheckDice(e *dice.Expr) error {
	if n := dice.DiceCount(e); n > cfg.Roll.MaxDice {
		return fmt.Errorf("expression rolls %d dice, more than the limit of %d", n, cfg.Roll.MaxDice)
	}
	return nil
}

// ParseOptions returns the parse options the configuration selects.
func (cfg *Config) ParseOptions() []dice.ParseOption {
	opts := []dice.ParseOption{
		dice.MaxDigits(cfg.Parse.MaxDigits),
		dice.MaxNesting(cfg.Parse.MaxNesting),
	}
	if cfg.Parse.ShuntingYard {
		opts = append(opts, dice.UseShuntingYard())
	}
	return opts
}
