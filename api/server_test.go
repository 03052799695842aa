package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/rules"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T, input chan<- rules.Direction) (*Server, controller.Store, *httptest.Server) {
	ctx := context.Background()
	store := controller.InMemStore(0)
	require.NoError(t, store.CreateGame(ctx, &controller.Game{ID: "game", Grid: rules.Grid{Width: 4, Height: 4}}))
	s := New(":0", store, "game", input)
	ts := httptest.NewServer(s.Handler())
	return s, store, ts
}

func pushFrame(t *testing.T, store controller.Store, turn int64) *rules.Frame {
	f := &rules.Frame{
		GameID:    "game",
		Turn:      turn,
		Outcome:   rules.OutcomeContinue,
		Snake:     []rules.Point{{X: int(turn % 4), Y: 2}},
		Length:    1,
		Direction: rules.DirectionRight,
	}
	require.NoError(t, store.PushGameFrame(context.Background(), "game", f))
	return f
}

func getJSON(t *testing.T, url string, v interface{}) int {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestGetGame(t *testing.T) {
	_, _, ts := setupServer(t, nil)
	defer ts.Close()

	g := &controller.Game{}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/game", g))
	require.Equal(t, "game", g.ID)
	require.Equal(t, rules.Grid{Width: 4, Height: 4}, g.Grid)
}

func TestGetState(t *testing.T) {
	_, store, ts := setupServer(t, nil)
	defer ts.Close()

	f := &rules.Frame{}
	require.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/state", f))

	pushFrame(t, store, 1)
	pushFrame(t, store, 2)
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/state", f))
	require.Equal(t, int64(2), f.Turn)
	require.Equal(t, rules.Point{X: 2, Y: 2}, f.Head())
}

func TestListFrames(t *testing.T) {
	_, store, ts := setupServer(t, nil)
	defer ts.Close()

	for i := int64(0); i < 5; i++ {
		pushFrame(t, store, i)
	}

	frames := []*rules.Frame{}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/frames?limit=2&offset=1", &frames))
	require.Len(t, frames, 2)
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/frames?offset=-1", &frames))
	require.Len(t, frames, 1)
	require.Equal(t, int64(4), frames[0].Turn)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/frames?offset=50", &frames))
	require.Empty(t, frames)

	resp, err := http.Get(ts.URL + "/frames?limit=lots")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostDirection(t *testing.T) {
	input := make(chan rules.Direction, 1)
	_, _, ts := setupServer(t, input)
	defer ts.Close()

	post := func(path string) int {
		resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(""))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusAccepted, post("/direction/up"))
	require.Equal(t, rules.DirectionUp, <-input)

	require.Equal(t, http.StatusBadRequest, post("/direction/sideways"))

	require.Equal(t, http.StatusAccepted, post("/direction/left"))
	require.Equal(t, http.StatusServiceUnavailable, post("/direction/down"))
	require.Equal(t, rules.DirectionLeft, <-input)
}

func TestPostDirectionReadOnly(t *testing.T) {
	_, _, ts := setupServer(t, nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/direction/up", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	_, _, ts := setupServer(t, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSocketStreamsFrames(t *testing.T) {
	s, store, ts := setupServer(t, nil)
	defer ts.Close()

	pushFrame(t, store, 1)

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/socket"
	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))

	f := &rules.Frame{}
	require.NoError(t, c.ReadJSON(f))
	require.Equal(t, int64(1), f.Turn)

	require.NoError(t, s.Observe(context.Background(), &rules.Frame{GameID: "game", Turn: 2}))
	require.NoError(t, c.ReadJSON(f))
	require.Equal(t, int64(2), f.Turn)
	require.Equal(t, 1, s.hub.count())
}

func TestHub(t *testing.T) {
	h := newHub()
	c := h.subscribe()
	for i := 0; i < subscriberBuffer+5; i++ {
		h.broadcast(&rules.Frame{Turn: int64(i)})
	}
	require.Len(t, c, subscriberBuffer)

	h.unsubscribe(c)
	h.unsubscribe(c)
	require.Equal(t, 0, h.count())

	c = h.subscribe()
	h.closeAll()
	_, ok := <-c
	require.False(t, ok)
}
