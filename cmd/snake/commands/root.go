package commands

import (
	"fmt"
	"os"

	"github.com/battlesnakeio/snake/config"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "snake",
	Short:   "snake is the classic arcade game, in your terminal",
	Version: Version,
	Args:    cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return playCmd.RunE(c, args)
	},
}

var (
	cfg      = config.Load()
	tickRate float64
	apiAddr  string
	logFile  string
)

// Execute runs the root command
func Execute() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "window width, the grid is width/cell-size columns")
	flags.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "window height, the grid is height/cell-size rows")
	flags.IntVar(&cfg.CellSize, "cell-size", cfg.CellSize, "size of a single grid cell")
	flags.Float64Var(&tickRate, "tick-rate", float64(cfg.TickRate), "ticks per second")
	flags.IntVar(&cfg.MaxFrames, "max-frames", cfg.MaxFrames, "frames of history kept for spectators")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "write play logs to this file, they are discarded otherwise")
	flags.StringVar(&apiAddr, "api-addr", "", "serve the spectator api on this address, e.g. :3005")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(headlessCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig applies the flags that don't map straight onto the config.
func loadConfig() (config.Config, error) {
	c := cfg
	c.TickRate = rate.Limit(tickRate)
	return c, c.Validate()
}
