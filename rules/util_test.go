package rules

import (
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays a fixed list of values, clamped to n.
type scriptedRand struct {
	values []int
	calls  int
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.calls%len(s.values)]
	s.calls++
	if v >= n {
		v = n - 1
	}
	return v
}

func seeded() Rand { return rand.New(rand.NewSource(42)) }

// newTestGame builds the 4x4 game used by the scripted scenarios, with the
// apple moved to apple.
func newTestGame(t *testing.T, apple Point) *Game {
	g, err := NewGame(Grid{Width: 4, Height: 4}, seeded())
	require.NoError(t, err)
	g.SetApple(apple)
	return g
}

func requireBody(t *testing.T, g *Game, expected ...Point) {
	require.Equal(t, expected, g.SnakeBody(), spew.Sdump(g.Frame("")))
}
