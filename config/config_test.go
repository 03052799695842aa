package config

import (
	"os"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/rules"
	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	require.NoError(t, os.Setenv("SNAKE_TEST_INT", "42"))
	defer os.Unsetenv("SNAKE_TEST_INT")
	require.Equal(t, 42, getEnvInt("SNAKE_TEST_INT", 7))

	require.NoError(t, os.Setenv("SNAKE_TEST_INT", "nope"))
	require.Equal(t, 7, getEnvInt("SNAKE_TEST_INT", 7))

	require.Equal(t, 7, getEnvInt("SNAKE_TEST_MISSING", 7))
}

func TestGetEnvString(t *testing.T) {
	require.NoError(t, os.Setenv("SNAKE_TEST_STRING", "debug"))
	defer os.Unsetenv("SNAKE_TEST_STRING")
	require.Equal(t, "debug", getEnvString("SNAKE_TEST_STRING", "info"))
	require.Equal(t, "info", getEnvString("SNAKE_TEST_MISSING", "info"))
}

func TestConfigGrid(t *testing.T) {
	c := Config{WindowWidth: 640, WindowHeight: 480, CellSize: 20, TickRate: 10}
	g, err := c.Grid()
	require.NoError(t, err)
	require.Equal(t, rules.Grid{Width: 32, Height: 24}, g)
	require.NoError(t, c.Validate())
	require.Equal(t, 100*time.Millisecond, c.TickInterval())
}

func TestConfigValidate(t *testing.T) {
	tests := []Config{
		{WindowWidth: 640, WindowHeight: 480, CellSize: 0, TickRate: 10},
		{WindowWidth: 640, WindowHeight: 480, CellSize: 20, TickRate: 0},
		{WindowWidth: 10, WindowHeight: 480, CellSize: 20, TickRate: 10},
	}
	for _, c := range tests {
		require.Error(t, c.Validate(), "%+v", c)
	}
}
