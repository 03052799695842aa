package worker

import (
	"context"
	"testing"

	"github.com/battlesnakeio/snake/rules"
	"github.com/stretchr/testify/require"
)

func TestNextDirection(t *testing.T) {
	grid := rules.Grid{Width: 10, Height: 10}
	tests := []struct {
		Name     string
		Frame    *rules.Frame
		Expected rules.Direction
	}{
		{
			Name: "straight at the apple",
			Frame: &rules.Frame{
				Grid: grid, Snake: []rules.Point{{X: 2, Y: 2}}, Length: 1,
				Direction: rules.DirectionUp, Apple: rules.Point{X: 5, Y: 2},
			},
			Expected: rules.DirectionRight,
		},
		{
			Name: "shorter across the edge",
			Frame: &rules.Frame{
				Grid: grid, Snake: []rules.Point{{X: 1, Y: 2}}, Length: 1,
				Direction: rules.DirectionRight, Apple: rules.Point{X: 9, Y: 2},
			},
			Expected: rules.DirectionLeft,
		},
		{
			Name: "no reversing",
			Frame: &rules.Frame{
				Grid: grid, Snake: []rules.Point{{X: 2, Y: 2}, {X: 3, Y: 2}}, Length: 2,
				Direction: rules.DirectionLeft, Apple: rules.Point{X: 5, Y: 2},
			},
			Expected: rules.DirectionLeft,
		},
		{
			Name: "avoid the body",
			Frame: &rules.Frame{
				Grid: grid,
				Snake: []rules.Point{
					{X: 2, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 1},
				},
				Length:    5,
				Direction: rules.DirectionUp, Apple: rules.Point{X: 6, Y: 2},
			},
			Expected: rules.DirectionUp,
		},
		{
			Name:     "empty frame",
			Frame:    &rules.Frame{Grid: grid},
			Expected: "",
		},
	}

	for _, test := range tests {
		require.Equal(t, test.Expected, NextDirection(test.Frame), test.Name)
	}
}

func TestAutopilotEats(t *testing.T) {
	game := newGame(t, 8, 8)
	pilot := NewAutopilot()
	rec := &recorder{}
	r := &Runner{
		Game:      game,
		Input:     pilot.C,
		Observers: []Observer{pilot, rec},
		MaxTicks:  200,
	}
	require.NoError(t, r.Run(context.Background()))

	last := rec.frames[len(rec.frames)-1]
	require.True(t, last.Eaten > 0)
	for _, f := range rec.frames {
		require.True(t, len(f.Snake) <= f.Length)
		require.True(t, f.Length-len(f.Snake) <= 1)
	}
}

func TestAutopilotDropsWhenFull(t *testing.T) {
	pilot := NewAutopilot()
	f := &rules.Frame{
		Grid: rules.Grid{Width: 4, Height: 4}, Snake: []rules.Point{{X: 1, Y: 1}}, Length: 1,
		Direction: rules.DirectionRight, Apple: rules.Point{X: 3, Y: 1},
	}
	require.NoError(t, pilot.Observe(context.Background(), f))
	require.NoError(t, pilot.Observe(context.Background(), f))
	require.Len(t, pilot.C, 1)
}
