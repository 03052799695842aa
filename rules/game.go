package rules

import (
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// Game is the full state of a single snake game. It isn't safe for
// concurrent use; one goroutine owns it and everyone else reads Frames.
type Game struct {
	ID   string
	Turn int64

	grid  Grid
	rand  Rand
	snake *Snake
	apple Point

	eaten     int64
	resets    int64
	best      int
	boardFull bool
}

// NewGame creates a game with a single segment snake in the middle of the
// grid heading right, and an apple somewhere else.
func NewGame(g Grid, r Rand) (*Game, error) {
	if g.Width < 1 || g.Height < 1 {
		return nil, errors.Wrapf(ErrInvalidGrid, "got %dx%d", g.Width, g.Height)
	}
	game := &Game{
		ID:    uuid.NewV4().String(),
		grid:  g,
		rand:  r,
		snake: NewSnake(g.Center(), DirectionRight),
		best:  1,
	}
	apple, err := PlaceAvoiding(g, r, game.snake.Body)
	if err != nil {
		// A 1x1 board has no room for an apple at all.
		return nil, errors.Wrap(err, "rules: placing first apple")
	}
	game.apple = apple

	log.WithFields(log.Fields{
		"GameID": game.ID,
		"Width":  g.Width,
		"Height": g.Height,
		"Apple":  apple,
	}).Info("new game")
	return game, nil
}

// Grid returns the board the game is played on.
func (g *Game) Grid() Grid { return g.grid }

// Length returns how many segments the snake is allowed to have.
func (g *Game) Length() int { return g.snake.Length }

// Direction returns the direction the snake last moved in. A buffered turn
// only shows up here after the next tick.
func (g *Game) Direction() Direction { return g.snake.Direction }

// SnakeBody returns a copy of the body, head first.
func (g *Game) SnakeBody() []Point { return g.snake.bodyCopy() }

// ApplePosition returns where the apple currently is.
func (g *Game) ApplePosition() Point { return g.apple }

// SetApple moves the apple, used to script games.
func (g *Game) SetApple(p Point) { g.apple = g.grid.Wrap(p) }

// RequestDirection buffers a turn for the next tick. Reversing into the body is
// silently ignored.
func (g *Game) RequestDirection(d Direction) bool {
	accepted := g.snake.SetPendingDirection(d)
	if !accepted {
		log.WithFields(log.Fields{
			"GameID":    g.ID,
			"Turn":      g.Turn,
			"Requested": d,
			"Direction": g.snake.Direction,
		}).Debug("ignored direction")
	}
	return accepted
}

// Advance moves the snake one cell and reports what happened. It does not
// re-place the apple or reset the snake, see Tick for that.
func (g *Game) Advance() TickOutcome {
	g.Turn++
	s := g.snake
	s.applyPending()

	ateFood := g.grid.Step(s.Head(), s.Direction).Equal(g.apple)
	if ateFood {
		s.Grow()
	}
	s.Move(g.grid)

	// A collision wins over eating.
	if s.collided() {
		return OutcomeSelfCollided
	}
	if ateFood {
		return OutcomeAteFood
	}
	return OutcomeContinue
}

// Reset puts the snake back to a single segment in the middle of the board,
// heading in a random direction. The apple only moves if it's in the way.
// The snake is reset in place.
func (g *Game) Reset() {
	center := g.grid.Center()
	s := g.snake
	s.Body = append(s.Body[:0], center)
	s.Length = 1
	s.Direction = randomDirection(g.rand)
	s.Pending = nil
	g.boardFull = false
	g.resets++

	if g.apple.Equal(center) {
		if apple, err := PlaceAvoiding(g.grid, g.rand, g.snake.Body); err == nil {
			g.apple = apple
		}
	}
	log.WithFields(log.Fields{
		"GameID":    g.ID,
		"Turn":      g.Turn,
		"Direction": g.snake.Direction,
		"Apple":     g.apple,
	}).Info("reset snake")
}

// Tick runs the game one tick: move, eat, respawn the apple and reset on
// collision. ErrBoardFull is returned when the snake has eaten the last free
// cell; the game is left as is for the caller to decide what to do.
func (g *Game) Tick() (TickOutcome, error) {
	outcome := g.Advance()
	switch outcome {
	case OutcomeAteFood:
		g.eaten++
		if g.snake.Length > g.best {
			g.best = g.snake.Length
		}
		log.WithFields(log.Fields{
			"GameID": g.ID,
			"Turn":   g.Turn,
			"Apple":  g.apple,
			"Length": g.snake.Length,
		}).Info("snake ate")

		apple, err := PlaceAvoiding(g.grid, g.rand, g.snake.Body)
		if err != nil {
			g.boardFull = true
			return outcome, errors.Wrapf(err, "rules: turn %d", g.Turn)
		}
		g.apple = apple
	case OutcomeSelfCollided:
		log.WithFields(log.Fields{
			"GameID": g.ID,
			"Turn":   g.Turn,
			"Length": g.snake.Length,
		}).Info("snake collided with itself")
		g.Reset()
	}
	return outcome, nil
}
