package rules

// Direction is one of the four moves a snake can make.
type Direction string

// The four directions, using the same names as the move api.
const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Directions lists every valid direction.
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

// Offset returns the unit step for the direction. Y grows downwards.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reverse direction, or "" for an invalid one.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return ""
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d.Opposite() != ""
}

// ParseDirection converts a move string into a Direction.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(s)
	return d, d.Valid()
}

func randomDirection(r Rand) Direction {
	return Directions[r.Intn(len(Directions))]
}
