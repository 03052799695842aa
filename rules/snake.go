package rules

// Snake is the player's body. Body[0] is the head.
type Snake struct {
	Body      []Point
	Length    int
	Direction Direction
	// Pending is applied at the start of the next move, then cleared.
	Pending *Direction
}

// NewSnake returns a single segment snake at p heading in d.
func NewSnake(p Point, d Direction) *Snake {
	return &Snake{
		Body:      []Point{p},
		Length:    1,
		Direction: d,
	}
}

// Head returns the first point in the body
func (s *Snake) Head() Point {
	return s.Body[0]
}

// Tail returns the last point in the body
func (s *Snake) Tail() Point {
	return s.Body[len(s.Body)-1]
}

// SetPendingDirection buffers a turn for the next move. A snake longer than
// one segment can't turn straight back into its neck, so the opposite of the
// current heading is dropped, as is anything that isn't a direction. Returns
// whether the request was buffered.
func (s *Snake) SetPendingDirection(requested Direction) bool {
	if !requested.Valid() {
		return false
	}
	if len(s.Body) > 1 && requested == s.Direction.Opposite() {
		return false
	}
	s.Pending = &requested
	return true
}

// applyPending swaps in the buffered direction, if there is one.
func (s *Snake) applyPending() {
	if s.Pending == nil {
		return
	}
	s.Direction = *s.Pending
	s.Pending = nil
}

// Move the snake 1 space in its current direction. The new head is prepended;
// the tail is only dropped when the body is longer than Length, so a snake
// that has just grown keeps its tail this turn.
func (s *Snake) Move(g Grid) Point {
	head := g.Step(s.Head(), s.Direction)
	s.Body = append([]Point{head}, s.Body...)
	for len(s.Body) > s.Length {
		s.Body = s.Body[:len(s.Body)-1]
	}
	return head
}

// Grow lengthens the target by one segment.
func (s *Snake) Grow() {
	s.Length++
}

// collided reports whether the head overlaps any other segment.
func (s *Snake) collided() bool {
	head := s.Head()
	for i, b := range s.Body {
		if i == 0 {
			continue
		}
		if b.Equal(head) {
			return true
		}
	}
	return false
}

func (s *Snake) bodyCopy() []Point {
	body := make([]Point, len(s.Body))
	copy(body, s.Body)
	return body
}
