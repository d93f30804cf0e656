package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.EqualValues(t, 1000, cfg.Roll.MaxDice)
	assert.Equal(t, dice.MaxLiteralDigits, cfg.Parse.MaxDigits)
	assert.Equal(t, dice.MaxNestingDepth, cfg.Parse.MaxNesting)
	assert.False(t, cfg.Parse.ShuntingYard)
	assert.Equal(t, 10000, cfg.Stats.Iterations)
	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
	assert.Len(t, cfg.ParseOptions(), 2)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dice.yaml")
	src := "server:\n  address: \"127.0.0.1:9000\"\nparse:\n  max_digits: 4\n  shunting_yard: true\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, 4, cfg.Parse.MaxDigits)
	assert.Equal(t, dice.MaxNestingDepth, cfg.Parse.MaxNesting)
	assert.True(t, cfg.Parse.ShuntingYard)
	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = dice.Parse("12345", cfg.ParseOptions()...)
	var lit *dice.LiteralTooLongError
	require.ErrorAs(t, err, &lit)
	assert.Equal(t, 4, lit.Max)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stats:\n  iterations: 50\n"), 0o644))
	t.Setenv("DICE_STATS_ITERATIONS", "75")
	t.Setenv("DICE_PARSE_MAX_NESTING", "16")
	t.Setenv("DICE_SERVER_ADDRESS", ":9999")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Stats.Iterations)
	assert.Equal(t, 16, cfg.Parse.MaxNesting)
	assert.Equal(t, ":9999", cfg.Server.Address)
}

func TestCheckDice(t *testing.T) {
	t.Setenv("DICE_ROLL_MAX_DICE", "10")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.EqualValues(t, 10, cfg.Roll.MaxDice)

	e, err := dice.Parse("4d6 + 6d8", cfg.ParseOptions()...)
	require.NoError(t, err)
	assert.NoError(t, cfg.CheckDice(e))

	e, err = dice.Parse("2147483647d2", cfg.ParseOptions()...)
	require.NoError(t, err)
	err = cfg.CheckDice(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2147483647 dice")
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dice.yaml")
		require.NoError(t, os.WriteFile(path, []byte("parse: [1, 2\n"), 0o644))
		_, err := config.Load(path)
		assert.Error(t, err)
	})
	t.Run("invalid", func(t *testing.T) {
		t.Setenv("DICE_PARSE_MAX_DIGITS", "0")
		t.Setenv("DICE_LOG_LEVEL", "loud")
		t.Setenv("DICE_ROLL_MAX_DICE", "-1")
		_, err := config.Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "roll.max_dice")
		assert.Contains(t, err.Error(), "parse.max_digits")
		assert.Contains(t, err.Error(), "log.level")
	})
}
