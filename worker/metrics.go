package worker

import (
	"github.com/battlesnakeio/snake/rules"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ticksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "ticks_total",
			Help:      "Ticks processed, by outcome.",
		},
		[]string{"outcome"},
	)
	boardFullTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "board_full_total",
			Help:      "Times the snake filled the whole board.",
		},
	)
	snakeLength = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "snake_length",
			Help:      "Current length of the snake.",
		},
	)
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "tick_duration_seconds",
			Help:      "Time spent updating the game state per tick.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(ticksTotal, boardFullTotal, snakeLength, tickDuration)
}

func observeTick() func() {
	t := prometheus.NewTimer(tickDuration)
	return func() { t.ObserveDuration() }
}

func recordOutcome(outcome rules.TickOutcome, length int) {
	ticksTotal.WithLabelValues(string(outcome)).Inc()
	snakeLength.Set(float64(length))
}
