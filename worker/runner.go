// Package worker runs a game. It owns the rules.Game for its whole life,
// pacing ticks, feeding it buffered input and handing each resulting frame to
// the observers (renderer, frame store, spectators).
package worker

import (
	"context"

	"github.com/battlesnakeio/snake/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Runner drives a single game. Game is only touched from the goroutine that
// calls Run; everything else talks to it through Input and Observers.
type Runner struct {
	Game *rules.Game
	// Input carries direction requests from keyboard, api or autopilot. It
	// is drained before every tick.
	Input <-chan rules.Direction
	// Limiter paces the ticks. A nil limiter runs as fast as possible.
	Limiter   *rate.Limiter
	Observers []Observer
	// MaxTicks stops the game after that many ticks. Zero runs until the
	// context is cancelled.
	MaxTicks int64

	// resetDue is set once the snake has filled the board. The full board
	// stays on screen for one tick, the next one starts over.
	resetDue bool
}

// NewLimiter returns a limiter releasing one tick at a time at the given rate.
func NewLimiter(tickRate rate.Limit) *rate.Limiter {
	return rate.NewLimiter(tickRate, 1)
}

// Run will run the game until the context is done, MaxTicks is reached or
// an observer fails. Context cancellation is not treated as an error.
func (r *Runner) Run(ctx context.Context) error {
	game := r.Game
	log.WithField("GameID", game.ID).Info("starting game")

	if err := r.publish(ctx, game.Frame("")); err != nil {
		return err
	}

	for ticks := int64(0); r.MaxTicks == 0 || ticks < r.MaxTicks; ticks++ {
		if err := r.wait(ctx); err != nil {
			log.WithField("GameID", game.ID).
				WithField("Turn", game.Turn).
				Info("stopping game")
			return nil
		}

		if r.resetDue {
			r.resetDue = false
			game.Reset()
			if err := r.publish(ctx, game.Frame("")); err != nil {
				return err
			}
			continue
		}

		r.drainInput()

		outcome, err := r.tick()
		if err != nil {
			return err
		}

		if err := r.publish(ctx, game.Frame(outcome)); err != nil {
			return err
		}
	}

	log.WithField("GameID", game.ID).
		WithField("Turn", game.Turn).
		Info("reached tick limit")
	return nil
}

// wait blocks until the next tick is due. It only fails once ctx is done.
func (r *Runner) wait(ctx context.Context) error {
	if r.Limiter == nil {
		return ctx.Err()
	}
	if err := r.Limiter.Wait(ctx); err != nil {
		// The limiter gives up early when the deadline comes before the
		// next tick; keep the game on screen until it actually expires.
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

// drainInput applies every direction waiting on the input channel without
// blocking. Later requests replace earlier ones.
func (r *Runner) drainInput() {
	if r.Input == nil {
		return
	}
	for {
		select {
		case d, ok := <-r.Input:
			if !ok {
				r.Input = nil
				return
			}
			r.Game.RequestDirection(d)
		default:
			return
		}
	}
}

func (r *Runner) tick() (rules.TickOutcome, error) {
	game := r.Game
	done := observeTick()
	outcome, err := game.Tick()
	done()

	if err != nil {
		if errors.Cause(err) != rules.ErrBoardFull {
			return outcome, err
		}
		// The snake filled the whole board. Nothing left to eat, start over
		// once this frame has been seen.
		log.WithFields(log.Fields{
			"GameID": game.ID,
			"Turn":   game.Turn,
			"Length": game.Length(),
		}).Info("board full")
		boardFullTotal.Inc()
		recordOutcome(outcome, game.Length())
		r.resetDue = true
		return outcome, nil
	}

	recordOutcome(outcome, game.Length())
	return outcome, nil
}

func (r *Runner) publish(ctx context.Context, frame *rules.Frame) error {
	for _, o := range r.Observers {
		if err := o.Observe(ctx, frame); err != nil {
			return errors.Wrapf(err, "worker: observing turn %d", frame.Turn)
		}
	}
	return nil
}
