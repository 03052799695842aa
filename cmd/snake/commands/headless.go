package commands

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/worker"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	ticks    int64
	seed     int64
	realtime bool
)

func init() {
	headlessCmd.Flags().Int64VarP(&ticks, "ticks", "n", 1000, "number of ticks to run, 0 runs until interrupted")
	headlessCmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	headlessCmd.Flags().BoolVar(&realtime, "realtime", false, "pace ticks at the tick rate instead of running flat out")
}

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "let the autopilot play without a screen, logging what happens",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
		go func() {
			select {
			case <-interrupts:
				cancel()
			case <-ctx.Done():
			}
		}()

		return headless(ctx)
	},
}

func headless(ctx context.Context) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(c.LogLevel, os.Stderr); err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s, err := newSession(ctx, c, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	// The autopilot shares the input channel with api steering.
	pilot := &worker.Autopilot{C: s.input}

	var last *rules.Frame
	summary := worker.ObserverFunc(func(ctx context.Context, f *rules.Frame) error {
		last = f
		return nil
	})

	start := time.Now()
	if err := s.run(ctx, realtime, ticks, pilot, summary); err != nil {
		return err
	}

	if last != nil {
		log.WithFields(log.Fields{
			"GameID":  last.GameID,
			"Seed":    seed,
			"Turns":   last.Turn,
			"Eaten":   last.Eaten,
			"Resets":  last.Resets,
			"Best":    last.Best,
			"Elapsed": time.Since(start),
		}).Info("headless game complete")
	}
	return nil
}
