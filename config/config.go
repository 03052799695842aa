// Package config holds the startup settings for a game. Everything can be set
// from the environment and is then overridable by command line flags.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/battlesnakeio/snake/rules"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Defaults match the classic 640x480 window with 20px cells, at 10 ticks a
// second.
var (
	WindowWidth  = getEnvInt("SNAKE_WINDOW_WIDTH", 640)
	WindowHeight = getEnvInt("SNAKE_WINDOW_HEIGHT", 480)
	CellSize     = getEnvInt("SNAKE_CELL_SIZE", 20)
	TickRate     = rate.Limit(getEnvInt("SNAKE_TICK_RATE", 10))
	MaxFrames    = getEnvInt("SNAKE_MAX_FRAMES", 1000)
	InputBuffer  = getEnvInt("SNAKE_INPUT_BUFFER", 8)
	LogLevel     = getEnvString("LOG_LEVEL", "info")
)

// Config is built once at startup and handed to the runner.
type Config struct {
	WindowWidth  int
	WindowHeight int
	CellSize     int
	TickRate     rate.Limit
	MaxFrames    int
	InputBuffer  int
	LogLevel     string
}

// Load returns a Config populated from the package defaults.
func Load() Config {
	return Config{
		WindowWidth:  WindowWidth,
		WindowHeight: WindowHeight,
		CellSize:     CellSize,
		TickRate:     TickRate,
		MaxFrames:    MaxFrames,
		InputBuffer:  InputBuffer,
		LogLevel:     LogLevel,
	}
}

// Validate checks the settings can produce a playable board.
func (c Config) Validate() error {
	if c.CellSize < 1 {
		return errors.Errorf("config: cell size must be positive, got %d", c.CellSize)
	}
	if c.TickRate <= 0 {
		return errors.Errorf("config: tick rate must be positive, got %v", c.TickRate)
	}
	_, err := c.Grid()
	return err
}

// Grid derives the board size from the window and cell size.
func (c Config) Grid() (rules.Grid, error) {
	if c.CellSize < 1 {
		return rules.Grid{}, errors.Errorf("config: cell size must be positive, got %d", c.CellSize)
	}
	return rules.NewGrid(c.WindowWidth/c.CellSize, c.WindowHeight/c.CellSize)
}

// TickInterval is the time between two ticks.
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(c.TickRate))
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvString(varName string, defaults string) string {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	return val
}
