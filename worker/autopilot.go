package worker

import (
	"context"

	"github.com/battlesnakeio/snake/rules"
)

// Autopilot steers the snake towards the apple, for headless runs and demos.
// It watches frames and sends its choice on C, which is meant to be used as
// a Runner's Input.
type Autopilot struct {
	C chan rules.Direction
}

// NewAutopilot returns an autopilot with a small input buffer.
func NewAutopilot() *Autopilot {
	return &Autopilot{C: make(chan rules.Direction, 1)}
}

// Observe picks the next direction from the frame. If the runner hasn't
// picked up the previous choice yet the new one is dropped.
func (a *Autopilot) Observe(ctx context.Context, f *rules.Frame) error {
	d := NextDirection(f)
	if d == "" {
		return nil
	}
	select {
	case a.C <- d:
	default:
	}
	return nil
}

// NextDirection greedily picks a move that gets closer to the apple without
// reversing or running into the body. Returns "" when every move is fatal.
func NextDirection(f *rules.Frame) rules.Direction {
	if len(f.Snake) == 0 {
		return ""
	}
	head := f.Head()
	dx := wrapDelta(head.X, f.Apple.X, f.Grid.Width)
	dy := wrapDelta(head.Y, f.Apple.Y, f.Grid.Height)

	var preferred []rules.Direction
	if dx > 0 {
		preferred = append(preferred, rules.DirectionRight)
	} else if dx < 0 {
		preferred = append(preferred, rules.DirectionLeft)
	}
	if dy > 0 {
		preferred = append(preferred, rules.DirectionDown)
	} else if dy < 0 {
		preferred = append(preferred, rules.DirectionUp)
	}
	candidates := append(append(preferred, f.Direction), rules.Directions...)

	for _, d := range candidates {
		if len(f.Snake) > 1 && d == f.Direction.Opposite() {
			continue
		}
		if safe(f, f.Grid.Step(head, d)) {
			return d
		}
	}
	return ""
}

// safe reports whether moving onto p won't hit the body. The tail moves out
// of the way unless the snake is about to grow.
func safe(f *rules.Frame, p rules.Point) bool {
	body := f.Snake
	if len(body) >= f.Length && !p.Equal(f.Apple) {
		body = body[:len(body)-1]
	}
	for i, b := range body {
		if i > 0 && b.Equal(p) {
			return false
		}
	}
	return true
}

// wrapDelta is the shortest signed distance from a to b on a ring of size n.
func wrapDelta(a, b, n int) int {
	d := b - a
	if d > n/2 {
		d -= n
	} else if d < -n/2 {
		d += n
	}
	return d
}
