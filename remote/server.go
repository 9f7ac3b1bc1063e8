// Package remote exposes the drive loop to operator clients: missions and
// manual instructions come in over HTTP, status and completion events go
// out over websockets.
package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Grupp-8-TSEA56-2022/control-center/settings"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Vehicle is the slice of the drive loop the server exposes to clients.
type Vehicle interface {
	SetMission(waypoints []string) error
	AddInstruction(kind string, id string) error
	UpdateMap(data []byte) error
	StatusJSON() []byte
}

// Server accepts operator requests and pushes vehicle status to every
// connected websocket client.
type Server struct {
	Addr string

	vehicle   Vehicle
	log       *slog.Logger
	clients   map[*websocket.Conn]bool
	mu        sync.Mutex
	server    *http.Server
	pushDelay time.Duration
}

func NewServer(addr string, vehicle Vehicle, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		Addr:      addr,
		vehicle:   vehicle,
		log:       log,
		clients:   map[*websocket.Conn]bool{},
		pushDelay: settings.STATUS_PUSH_DELAY,
	}
}

// Start serves the operator endpoints. This call blocks until the server
// stops or fails.
func (s *Server) Start() {
	s.server = &http.Server{Addr: s.Addr, Handler: s.routes()}
	s.log.Info("remote server listening", "addr", s.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Error("remote server failed", "error", err)
	}
}

// Stop shuts down the HTTP server.
func (s *Server) Stop() {
	if s.server != nil {
		_ = s.server.Close()
	}
}

// routes is separate from Start so tests can drive the handlers without a
// listener.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mission", methodHandler(http.MethodPost, s.handleMission))
	mux.HandleFunc("/api/instruction", methodHandler(http.MethodPost, s.handleInstruction))
	mux.HandleFunc("/api/map", methodHandler(http.MethodPost, s.handleMap))
	mux.HandleFunc("/api/status", methodHandler(http.MethodGet, s.handleStatus))
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// methodHandler restricts a route to one method the way go1.22 ServeMux
// method patterns ("POST /path") would; this toolchain's mux predates them.
// GET also admits HEAD, and a mismatch answers 405 with an Allow header.
func methodHandler(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			allow := method
			if method == http.MethodGet {
				allow = "GET, HEAD"
			}
			w.Header().Set("Allow", allow)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

type missionRequest struct {
	Waypoints []string `json:"waypoints"`
}

func (s *Server) handleMission(w http.ResponseWriter, r *http.Request) {
	var req missionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if len(req.Waypoints) == 0 {
		http.Error(w, "mission needs waypoints", 400)
		return
	}
	if err := s.vehicle.SetMission(req.Waypoints); err != nil {
		s.log.Warn("mission rejected", "error", err)
		http.Error(w, err.Error(), 400)
		return
	}
	w.WriteHeader(200)
}

type instructionRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (s *Server) handleInstruction(w http.ResponseWriter, r *http.Request) {
	var req instructionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := s.vehicle.AddInstruction(req.Kind, req.ID); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"id": req.ID}); err != nil {
		s.log.Warn("could not write instruction response", "error", err)
	}
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if err := s.vehicle.UpdateMap(body); err != nil {
		s.log.Warn("map rejected", "error", err)
		http.Error(w, err.Error(), 400)
		return
	}
	w.WriteHeader(200)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(s.vehicle.StatusJSON()); err != nil {
		s.log.Warn("could not write status response", "error", err)
	}
}

// handleWS upgrades HTTP to websocket and registers the client for pushes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			if err := conn.Close(); err != nil {
				s.log.Debug("could not close websocket", "error", err)
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

type wsEvent struct {
	Event  string          `json:"event"`
	Status json.RawMessage `json:"status,omitempty"`
	ID     string          `json:"id,omitempty"`
}

// PushStatus broadcasts the vehicle status at a fixed cadence until the
// context is canceled.
func (s *Server) PushStatus(ctx context.Context) {
	ticker := time.NewTicker(s.pushDelay)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.broadcastEvent(wsEvent{Event: "status", Status: s.vehicle.StatusJSON()})
		}
	}
}

// InstructionFinished announces a completed drive instruction to every
// websocket client. Wire it to the drive loop's completion hook.
func (s *Server) InstructionFinished(id string) {
	s.broadcastEvent(wsEvent{Event: "instruction_finished", ID: id})
}

func (s *Server) broadcastEvent(event wsEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		s.log.Error("could not encode websocket event", "error", err)
		return
	}
	s.broadcast(msg)
}

// broadcast sends a message to all connected websocket clients.
func (s *Server) broadcast(msg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.WriteMessage(websocket.TextMessage, msg)
	}
}
