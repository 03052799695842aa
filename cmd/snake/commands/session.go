package commands

import (
	"context"
	"io"
	"time"

	"github.com/battlesnakeio/snake/api"
	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/worker"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// session wires a game to its store, input channel and optional spectator
// api.
type session struct {
	cfg   config.Config
	game  *rules.Game
	store controller.Store
	input chan rules.Direction
	api   *api.Server
}

func newSession(ctx context.Context, c config.Config, r rules.Rand) (*session, error) {
	grid, err := c.Grid()
	if err != nil {
		return nil, err
	}
	game, err := rules.NewGame(grid, r)
	if err != nil {
		return nil, err
	}

	store := controller.InstrumentStore(controller.InMemStore(c.MaxFrames))
	err = store.CreateGame(ctx, &controller.Game{ID: game.ID, Grid: grid, Created: time.Now()})
	if err != nil {
		return nil, errors.Wrap(err, "unable to record game")
	}

	s := &session{
		cfg:   c,
		game:  game,
		store: store,
		input: make(chan rules.Direction, c.InputBuffer),
	}
	if apiAddr != "" {
		s.api = api.New(apiAddr, store, game.ID, s.input)
	}
	return s, nil
}

// run plays the game until ctx is done or maxTicks is reached. Extra
// observers see each frame after it has been stored.
func (s *session) run(ctx context.Context, limiter bool, maxTicks int64, extra ...worker.Observer) error {
	observers := []worker.Observer{worker.StoreFrames(s.store)}
	if s.api != nil {
		observers = append(observers, s.api)
		go s.api.WaitForExit()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.api.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("unable to stop spectator api")
			}
		}()
	}
	observers = append(observers, extra...)

	r := &worker.Runner{
		Game:      s.game,
		Input:     s.input,
		Observers: observers,
		MaxTicks:  maxTicks,
	}
	if limiter {
		r.Limiter = worker.NewLimiter(s.cfg.TickRate)
	}
	return r.Run(ctx)
}

func setupLogging(level string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	log.SetLevel(lvl)
	log.SetOutput(out)
	return nil
}
