package rules

import "github.com/pkg/errors"

// ErrBoardFull is returned when there is nowhere left to put the apple.
var ErrBoardFull = errors.New("rules: no unoccupied cell for apple")

// maxPlacementAttempts bounds random sampling before falling back to
// scanning the free cells.
const maxPlacementAttempts = 32

// PlaceAvoiding picks a random cell that is not in occupied. It samples random
// cells first and falls back to a uniform pick over the free cells when the
// samples keep landing on the snake.
func PlaceAvoiding(g Grid, r Rand, occupied []Point) (Point, error) {
	if len(occupied) < g.Cells() {
		for i := 0; i < maxPlacementAttempts; i++ {
			p := g.RandomCell(r)
			if !containsPoint(occupied, p) {
				return p, nil
			}
		}
	}

	openPoints := g.Unoccupied(occupied)
	if len(openPoints) == 0 {
		return Point{}, ErrBoardFull
	}
	return openPoints[r.Intn(len(openPoints))], nil
}
