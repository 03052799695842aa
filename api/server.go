// Package api serves a running game to spectators over http: the latest
// state, recent frame history, a websocket stream of frames, remote steering
// and prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/rules"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultFrameLimit = 100
	writeWait         = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// The socket is read only, any page may watch.
		return true
	},
}

// Server is the spectator api for a single game.
type Server struct {
	hs     *http.Server
	store  controller.Store
	gameID string
	input  chan<- rules.Direction
	hub    *hub
}

// New creates the api for the game gameID. Frames are read from store;
// direction requests are forwarded on input, which may be nil to make the
// game read only.
func New(addr string, store controller.Store, gameID string, input chan<- rules.Direction) *Server {
	s := &Server{
		store:  store,
		gameID: gameID,
		input:  input,
		hub:    newHub(),
	}
	s.hs = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/game", s.getGame)
	router.GET("/state", s.getState)
	router.GET("/frames", s.listFrames)
	router.GET("/socket", s.socket)
	router.POST("/direction/:direction", s.postDirection)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)
}

// Observe pushes a frame to every websocket spectator. It never blocks the
// game; spectators that fall behind miss frames.
func (s *Server) Observe(ctx context.Context, f *rules.Frame) error {
	s.hub.broadcast(f)
	return nil
}

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() {
	log.Infof("spectator api listening on %s", s.hs.Addr)
	err := s.hs.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("error while listening")
	}
}

// Shutdown stops the http server and disconnects spectators.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	return s.hs.Shutdown(ctx)
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	g, err := s.store.GetGame(r.Context(), s.gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f, err := s.store.LastGameFrame(r.Context(), s.gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) listFrames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, err := queryInt(r, "limit", defaultFrameLimit)
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		http.Error(w, "invalid offset", http.StatusBadRequest)
		return
	}

	frames, err := s.store.ListGameFrames(r.Context(), s.gameID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if frames == nil {
		frames = []*rules.Frame{}
	}
	writeJSON(w, http.StatusOK, frames)
}

func (s *Server) postDirection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if s.input == nil {
		http.Error(w, "game is read only", http.StatusForbidden)
		return
	}
	d, ok := rules.ParseDirection(ps.ByName("direction"))
	if !ok {
		http.Error(w, "invalid direction", http.StatusBadRequest)
		return
	}

	select {
	case s.input <- d:
		w.WriteHeader(http.StatusAccepted)
	default:
		http.Error(w, "input buffer full", http.StatusServiceUnavailable)
	}
}

func (s *Server) socket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("unable to upgrade websocket")
		return
	}
	defer func() {
		if err := ws.Close(); err != nil {
			log.WithError(err).Debug("error while closing websocket")
		}
	}()

	frames := s.hub.subscribe()
	defer s.hub.unsubscribe(frames)

	// Reads only serve to notice the spectator going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	if last, err := s.store.LastGameFrame(r.Context(), s.gameID); err == nil {
		if err := writeFrame(ws, last); err != nil {
			return
		}
	}

	for {
		select {
		case f, ok := <-frames:
			if !ok {
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			if err := writeFrame(ws, f); err != nil {
				log.WithError(err).Debug("spectator went away")
				return
			}
		case <-closed:
			return
		}
	}
}

func writeFrame(ws *websocket.Conn, f *rules.Frame) error {
	if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return ws.WriteJSON(f)
}

func queryInt(r *http.Request, key string, defaults int) (int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaults, nil
	}
	return strconv.Atoi(val)
}

func writeError(w http.ResponseWriter, err error) {
	if err == controller.ErrNotFound {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	log.WithError(err).Error("api request failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to encode response")
	}
}
