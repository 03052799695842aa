// Package controller keeps the recent history of the games running in this
// process so spectators can catch up and step back through frames.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/battlesnakeio/snake/rules"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a game is not found.
	ErrNotFound = errors.New("controller: game not found")
	// ErrExists is returned when creating a game twice.
	ErrExists = errors.New("controller: game already exists")
)

// Game is what the store knows about a game besides its frames.
type Game struct {
	ID      string     `json:"id"`
	Grid    rules.Grid `json:"grid"`
	Created time.Time  `json:"created"`
}

// Store is the interface to the frame history.
type Store interface {
	CreateGame(ctx context.Context, g *Game) error
	GetGame(ctx context.Context, id string) (*Game, error)
	PushGameFrame(ctx context.Context, id string, f *rules.Frame) error
	ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error)
	LastGameFrame(ctx context.Context, id string) (*rules.Frame, error)
}

// InMemStore returns an in memory implementation of the Store interface that
// keeps at most maxFrames frames per game, dropping the oldest first. A
// maxFrames below one keeps everything.
func InMemStore(maxFrames int) Store {
	return &inmem{
		games:     map[string]*Game{},
		frames:    map[string][]*rules.Frame{},
		maxFrames: maxFrames,
	}
}

type inmem struct {
	games     map[string]*Game
	frames    map[string][]*rules.Frame
	maxFrames int
	lock      sync.RWMutex
}

func (in *inmem) CreateGame(ctx context.Context, g *Game) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[g.ID]; ok {
		return ErrExists
	}
	if g.Created.IsZero() {
		g.Created = time.Now()
	}
	in.games[g.ID] = g
	in.frames[g.ID] = []*rules.Frame{}
	return nil
}

func (in *inmem) GetGame(ctx context.Context, id string) (*Game, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	g, ok := in.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *g
	return &clone, nil
}

func (in *inmem) PushGameFrame(ctx context.Context, id string, f *rules.Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	frames, ok := in.frames[id]
	if !ok {
		return ErrNotFound
	}
	frames = append(frames, f.Clone())
	if in.maxFrames > 0 && len(frames) > in.maxFrames {
		frames = frames[len(frames)-in.maxFrames:]
	}
	in.frames[id] = frames
	return nil
}

// ListGameFrames pages through the retained frames. A negative offset counts
// back from the newest frame. Like every frame the store returns, they are
// copies and can be changed freely.
func (in *inmem) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	frames, ok := in.frames[id]
	if !ok {
		return nil, ErrNotFound
	}

	if offset < 0 {
		offset = len(frames) + offset
		if offset < 0 {
			offset = 0
		}
	}
	if len(frames) == 0 || offset >= len(frames) || limit <= 0 {
		return nil, nil
	}
	if offset+limit >= len(frames) {
		limit = len(frames) - offset
	}
	page := make([]*rules.Frame, limit)
	for i, f := range frames[offset : offset+limit] {
		page[i] = f.Clone()
	}
	return page, nil
}

func (in *inmem) LastGameFrame(ctx context.Context, id string) (*rules.Frame, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	frames, ok := in.frames[id]
	if !ok || len(frames) == 0 {
		return nil, ErrNotFound
	}
	return frames[len(frames)-1].Clone(), nil
}
