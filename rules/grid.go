package rules

import "github.com/pkg/errors"

// ErrInvalidGrid is returned when a board has no cells.
var ErrInvalidGrid = errors.New("rules: grid must be at least 1x1")

// Rand is the source of randomness used for apple placement and resets.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Grid is a toroidal board: leaving one edge re-enters on the opposite one.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewGrid validates the dimensions and returns the grid.
func NewGrid(width, height int) (Grid, error) {
	if width < 1 || height < 1 {
		return Grid{}, errors.Wrapf(ErrInvalidGrid, "got %dx%d", width, height)
	}
	return Grid{Width: width, Height: height}, nil
}

// Wrap maps any point back onto the board.
func (g Grid) Wrap(p Point) Point {
	return Point{X: mod(p.X, g.Width), Y: mod(p.Y, g.Height)}
}

// Step moves p one cell in direction d, wrapping around the edges.
func (g Grid) Step(p Point, d Direction) Point {
	return g.Wrap(p.Add(d.Offset()))
}

// RandomCell returns a uniformly random cell.
func (g Grid) RandomCell(r Rand) Point {
	return Point{X: r.Intn(g.Width), Y: r.Intn(g.Height)}
}

// Center is where a fresh snake spawns.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Contains reports whether p is on the board without wrapping.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells is the total number of cells.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Unoccupied returns every cell not in occupied, row by row.
func (g Grid) Unoccupied(occupied []Point) []Point {
	taken := make(map[Point]struct{}, len(occupied))
	for _, o := range occupied {
		taken[g.Wrap(o)] = struct{}{}
	}

	numCandidatePoints := g.Cells() - len(taken)
	if numCandidatePoints < 0 {
		numCandidatePoints = 0
	}
	candidatePoints := make([]Point, 0, numCandidatePoints)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Point{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				candidatePoints = append(candidatePoints, p)
			}
		}
	}
	return candidatePoints
}

func mod(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}
