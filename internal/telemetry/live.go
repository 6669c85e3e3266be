package telemetry

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/asgard/interceptsim/internal/world"
)

// TickSnapshot is the JSON payload pushed to live viewers once per tick.
type TickSnapshot struct {
	Tick    int                `json:"tick"`
	SimTime float64            `json:"sim_time"`
	Entries []EntitySnapshot   `json:"entities"`
	Radars  []RadarSnapshot    `json:"radars"`
}

// EntitySnapshot carries one ballistic or interceptor's visible state.
type EntitySnapshot struct {
	ID     uint32  `json:"id"`
	Kind   string  `json:"kind"` // "ballistic" or "interceptor"
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Theta  float64 `json:"theta"`
	Psi    float64 `json:"psi"`
	State  string  `json:"state"`
	Target uint32  `json:"target,omitempty"`
}

// RadarSnapshot carries one radar's most recent detection set.
type RadarSnapshot struct {
	ID       uint32   `json:"id"`
	Detected []uint32 `json:"detected"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveFeed fans out per-tick snapshots to any number of connected websocket
// viewers. A slow or absent viewer never blocks the simulation: broadcasts
// are best-effort and a full client send buffer drops the frame.
type LiveFeed struct {
	log     *logrus.Entry
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan TickSnapshot
}

// NewLiveFeed creates an empty feed. log may be nil.
func NewLiveFeed(log *logrus.Entry) *LiveFeed {
	return &LiveFeed{log: log, clients: make(map[*websocket.Conn]chan TickSnapshot)}
}

// ServeHTTP upgrades the request to a websocket and streams snapshots to it
// until the client disconnects.
func (f *LiveFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	ch := make(chan TickSnapshot, 16)
	f.mu.Lock()
	f.clients[conn] = ch
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.clients, conn)
		f.mu.Unlock()
		conn.Close()
	}()

	for snap := range ch {
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}
}

// Publish sends a snapshot to every connected viewer, dropping it for any
// viewer whose send buffer is full.
func (f *LiveFeed) Publish(snap TickSnapshot) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for conn, ch := range f.clients {
		select {
		case ch <- snap:
		default:
			if f.log != nil {
				f.log.WithField("remote", conn.RemoteAddr().String()).Warn("live feed buffer full, dropping tick")
			}
		}
	}
}

// Close disconnects all viewers.
func (f *LiveFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn, ch := range f.clients {
		close(ch)
		conn.Close()
		delete(f.clients, conn)
	}
}

// Snapshot builds a TickSnapshot from the current World state.
func Snapshot(tick int, simTime float64, w *world.World) TickSnapshot {
	snap := TickSnapshot{Tick: tick, SimTime: simTime}

	for _, id := range w.Ballistics() {
		t := w.Transform(id)
		a := w.Attitude(id)
		l := w.Liveness(id)
		e := EntitySnapshot{ID: uint32(id), Kind: "ballistic", X: t.Position.X, Y: t.Position.Y, Z: t.Position.Z, State: l.State.String()}
		if a != nil {
			e.Theta, e.Psi = a.Theta, a.Psi
		}
		snap.Entries = append(snap.Entries, e)
	}

	for _, id := range w.Interceptors() {
		t := w.Transform(id)
		a := w.Attitude(id)
		l := w.Liveness(id)
		tag := w.Interceptor(id)
		e := EntitySnapshot{ID: uint32(id), Kind: "interceptor", X: t.Position.X, Y: t.Position.Y, Z: t.Position.Z, State: l.State.String()}
		if a != nil {
			e.Theta, e.Psi = a.Theta, a.Psi
		}
		if tag.HasTarget {
			e.Target = uint32(tag.Target)
		}
		snap.Entries = append(snap.Entries, e)
	}

	for _, id := range w.Radars() {
		r := w.Radar(id)
		rs := RadarSnapshot{ID: uint32(id)}
		for _, d := range r.Detections {
			rs.Detected = append(rs.Detected, uint32(d.Entity))
		}
		snap.Radars = append(snap.Radars, rs)
	}

	return snap
}
