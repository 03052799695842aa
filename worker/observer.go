package worker

import (
	"context"

	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/rules"
	log "github.com/sirupsen/logrus"
)

// Observer is handed every frame the runner produces, in order, on the
// runner's goroutine. Implementations must not block for long.
type Observer interface {
	Observe(ctx context.Context, f *rules.Frame) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, f *rules.Frame) error

// Observe calls fn.
func (fn ObserverFunc) Observe(ctx context.Context, f *rules.Frame) error {
	return fn(ctx, f)
}

// StoreFrames records every frame in the store under the frame's game id.
// Store errors are logged rather than stopping the game.
func StoreFrames(store controller.Store) Observer {
	return ObserverFunc(func(ctx context.Context, f *rules.Frame) error {
		if err := store.PushGameFrame(ctx, f.GameID, f); err != nil {
			log.WithError(err).
				WithField("GameID", f.GameID).
				WithField("Turn", f.Turn).
				Warn("unable to store frame")
		}
		return nil
	})
}
