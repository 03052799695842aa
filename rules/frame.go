package rules

// Frame is a read only snapshot of the game after a tick, safe to hand to
// other goroutines.
type Frame struct {
	GameID    string      `json:"gameId"`
	Turn      int64       `json:"turn"`
	Outcome   TickOutcome `json:"outcome,omitempty"`
	Grid      Grid        `json:"grid"`
	Snake     []Point     `json:"snake"`
	Length    int         `json:"length"`
	Direction Direction   `json:"direction"`
	Apple     Point       `json:"apple"`
	Eaten     int64       `json:"eaten"`
	Resets    int64       `json:"resets"`
	Best      int         `json:"best"`
	BoardFull bool        `json:"boardFull,omitempty"`
}

// Frame snapshots the current state, tagged with the outcome of the tick that
// produced it. Frames not produced by a tick, like the first one or the one
// after a reset, carry an empty outcome.
func (g *Game) Frame(outcome TickOutcome) *Frame {
	return &Frame{
		GameID:    g.ID,
		Turn:      g.Turn,
		Outcome:   outcome,
		Grid:      g.grid,
		Snake:     g.snake.bodyCopy(),
		Length:    g.snake.Length,
		Direction: g.snake.Direction,
		Apple:     g.apple,
		Eaten:     g.eaten,
		Resets:    g.resets,
		Best:      g.best,
		BoardFull: g.boardFull,
	}
}

// Head returns the first point of the snake in the frame.
func (f *Frame) Head() Point {
	if len(f.Snake) == 0 {
		return Point{}
	}
	return f.Snake[0]
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	clone := *f
	clone.Snake = append([]Point(nil), f.Snake...)
	return &clone
}
