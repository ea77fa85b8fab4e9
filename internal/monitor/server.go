// Package monitor is bench-debug tooling only: it exposes the control
// core's per-tick state over a websocket so a browser dashboard can
// watch a live or simulated ride. It has no influence on the control
// loop itself and is never required for the core to run. Grounded on
// the sagostin-goefidash broadcast server's client/writer/reader pattern,
// adapted from its ECU/GPS polling loop to a single Publish call driven
// by app.App's own 10 Hz tick.
package monitor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Snapshot is the JSON frame broadcast to connected clients. Fields
// mirror app.State closely enough for a dashboard to render without
// reaching into the control core's internal types.
type Snapshot struct {
	ThrottleFiltered uint8   `json:"throttle_filtered"`
	PASCadenceRPM    uint8   `json:"pas_cadence_rpm"`
	WheelSpeedKMH    float64 `json:"wheel_speed_kmh"`
	MotorERPS        uint16  `json:"motor_erps"`
	BatterySOC       uint8   `json:"battery_soc"`
	ErrorCode        uint8   `json:"error_code"`
	CruiseState      uint8   `json:"cruise_state"`
	AssistLevel      uint8   `json:"assist_level"`
	Stamp            int64   `json:"stamp"` // Unix ms
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Server broadcasts Snapshot frames to connected websocket clients.
type Server struct {
	log *slog.Logger

	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*wsClient]struct{}
}

// New constructs a Server. log may be nil, in which case slog.Default
// is used.
func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// Handler returns the HTTP handler that upgrades connections to
// websockets and streams Snapshot frames.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleWS)
}

// Run starts an HTTP server bound to addr serving the websocket
// endpoint at /ws. It blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx)
	}()

	s.log.Info("monitor listening", "addr", addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 32)}

	s.clientsMu.Lock()
	s.clients[client] = struct{}{}
	count := len(s.clients)
	s.clientsMu.Unlock()
	s.log.Info("monitor client connected", "count", count)

	go func() {
		defer conn.Close()
		for msg := range client.send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	go func() {
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, client)
			count := len(s.clients)
			s.clientsMu.Unlock()
			close(client.send)
			s.log.Info("monitor client disconnected", "count", count)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// Publish broadcasts snap to every connected client. Slow clients are
// dropped from delivery for this frame rather than blocking the
// caller — the control loop must never wait on a dashboard.
func (s *Server) Publish(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for client := range s.clients {
		select {
		case client.send <- data:
		default:
		}
	}
}
