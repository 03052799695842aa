package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(32, 24)
	require.NoError(t, err)
	require.Equal(t, 768, g.Cells())

	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := NewGrid(dims[0], dims[1])
		require.Error(t, err)
	}
}

func TestGridWrap(t *testing.T) {
	g := Grid{Width: 4, Height: 3}
	tests := []struct {
		In       Point
		Expected Point
	}{
		{In: Point{X: 1, Y: 1}, Expected: Point{X: 1, Y: 1}},
		{In: Point{X: 4, Y: 1}, Expected: Point{X: 0, Y: 1}},
		{In: Point{X: -1, Y: 1}, Expected: Point{X: 3, Y: 1}},
		{In: Point{X: 1, Y: 3}, Expected: Point{X: 1, Y: 0}},
		{In: Point{X: 1, Y: -1}, Expected: Point{X: 1, Y: 2}},
		{In: Point{X: -9, Y: 10}, Expected: Point{X: 3, Y: 1}},
	}
	for _, test := range tests {
		require.Equal(t, test.Expected, g.Wrap(test.In), "In: %s", test.In)
	}
}

func TestGridStepStaysOnBoard(t *testing.T) {
	g := Grid{Width: 5, Height: 4}
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			for _, d := range Directions {
				p := g.Step(Point{X: x, Y: y}, d)
				require.True(t, g.Contains(p), "%d,%d %s -> %s", x, y, d, p)
			}
		}
	}
}

func TestGridCenter(t *testing.T) {
	require.Equal(t, Point{X: 2, Y: 2}, Grid{Width: 4, Height: 4}.Center())
	require.Equal(t, Point{X: 16, Y: 12}, Grid{Width: 32, Height: 24}.Center())
	require.Equal(t, Point{X: 0, Y: 0}, Grid{Width: 1, Height: 1}.Center())
}

func TestGridRandomCell(t *testing.T) {
	g := Grid{Width: 3, Height: 2}
	r := seeded()
	seen := map[Point]bool{}
	for i := 0; i < 500; i++ {
		p := g.RandomCell(r)
		require.True(t, g.Contains(p))
		seen[p] = true
	}
	require.Len(t, seen, 6)
}

func TestGridUnoccupied(t *testing.T) {
	g := Grid{Width: 2, Height: 2}
	open := g.Unoccupied([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 1}})
	require.Equal(t, []Point{{X: 1, Y: 0}, {X: 0, Y: 1}}, open)

	require.Len(t, g.Unoccupied(nil), 4)
	require.Empty(t, g.Unoccupied([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}))
}
