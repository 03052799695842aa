package rules

// TickOutcome describes what happened to the snake during a tick.
type TickOutcome string

const (
	// OutcomeContinue is a plain move.
	OutcomeContinue TickOutcome = "continue"
	// OutcomeAteFood is when the head landed on the apple and the snake grew.
	OutcomeAteFood TickOutcome = "ate-food"
	// OutcomeSelfCollided is when the head ran into the snake's own body.
	OutcomeSelfCollided TickOutcome = "self-collided"
)
