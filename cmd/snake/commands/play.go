package commands

import (
	"context"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"time"

	"github.com/battlesnakeio/snake/rules"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play snake in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return play(context.Background())
	},
}

func play(ctx context.Context) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}

	// Anything logged to the terminal would tear up the board.
	var out io.Writer = ioutil.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrap(err, "unable to open log file")
		}
		defer f.Close()
		out = f
	}
	if err := setupLogging(c.LogLevel, out); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, err := newSession(ctx, c, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return err
	}

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "unable to start terminal")
	}
	events, stopped := setupEventQueue(ctx)
	defer func() {
		cancel()
		termbox.Interrupt()
		<-stopped
		termbox.Close()
	}()

	go readKeys(ctx, events, s.input, cancel)

	return s.run(ctx, true, 0, &screen{})
}

// setupEventQueue polls termbox in the background. The poller stops once
// termbox.Interrupt is called, which is the only way to unblock PollEvent;
// stopped is closed when it has.
func setupEventQueue(ctx context.Context) (<-chan termbox.Event, <-chan struct{}) {
	eventQueue := make(chan termbox.Event)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		pollEvents(ctx, termbox.PollEvent, eventQueue)
	}()
	return eventQueue, stopped
}

// pollEvents forwards events until poll reports an interrupt. After ctx is
// done events are dropped but poll keeps being called, since Interrupt
// blocks until a poll picks it up.
func pollEvents(ctx context.Context, poll func() termbox.Event, out chan<- termbox.Event) {
	for {
		ev := poll()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
		}
	}
}

// readKeys turns key presses into direction requests until quit is pressed.
// Requests are dropped if the game hasn't caught up with earlier ones.
func readKeys(ctx context.Context, events <-chan termbox.Event, input chan<- rules.Direction, quit func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if ev.Type != termbox.EventKey {
				continue
			}
			if isQuit(ev) {
				quit()
				return
			}
			d, ok := keyDirection(ev)
			if !ok {
				continue
			}
			select {
			case input <- d:
			default:
			}
		}
	}
}

func isQuit(ev termbox.Event) bool {
	return ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q'
}

func keyDirection(ev termbox.Event) (rules.Direction, bool) {
	switch ev.Key {
	case termbox.KeyArrowUp:
		return rules.DirectionUp, true
	case termbox.KeyArrowDown:
		return rules.DirectionDown, true
	case termbox.KeyArrowLeft:
		return rules.DirectionLeft, true
	case termbox.KeyArrowRight:
		return rules.DirectionRight, true
	}
	switch ev.Ch {
	case 'w', 'k':
		return rules.DirectionUp, true
	case 's', 'j':
		return rules.DirectionDown, true
	case 'a', 'h':
		return rules.DirectionLeft, true
	case 'd', 'l':
		return rules.DirectionRight, true
	}
	return "", false
}
