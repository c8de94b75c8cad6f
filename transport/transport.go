// Package transport bridges the overlay engine to external senders over
// WebSocket. Commands travel as JSON envelopes; the bridge stages them onto
// the engine's loop so all engine state stays single-threaded. Engine
// notifications (group expiry) flow back to connected clients.
package transport

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/overlay"
)

const writeWait = 10 * time.Second

// Envelope is one inbound message. Either a single sequenced command:
//
//	{"id": 17, "command": "overlay_rect", "args": [4278190335, 10, 10, 50, 50, 5000, 10]}
//
// or an unsequenced batch the sender has ordered out of band:
//
//	{"batch": [{"command": "overlay_set_group", "args": ["hud"]}, ...]}
type Envelope struct {
	ID      int64        `json:"id"`
	Command string       `json:"command"`
	Args    []any        `json:"args"`
	Batch   []BatchEntry `json:"batch,omitempty"`
}

// BatchEntry is one command of a batch envelope.
type BatchEntry struct {
	Command string `json:"command"`
	Args    []any  `json:"args"`
}

// Notification is an outbound engine event.
type Notification struct {
	Event string `json:"event"`
	Group string `json:"group"`
}

// Bridge is an http.Handler upgrading connections to WebSocket and feeding
// decoded commands into an Engine via its Loop. Wire the engine's events to
// Bridge.Notify to push hide notifications back to clients:
//
//	bridge := transport.NewBridge(loop)
//	eng := overlay.NewEngine(
//		overlay.WithSurface(surf),
//		overlay.WithScheduler(loop),
//		overlay.WithEvents(bridge.Notify),
//	)
//	bridge.SetEngine(eng)
//	http.Handle("/overlay", bridge)
type Bridge struct {
	loop     *overlay.Loop
	upgrader websocket.Upgrader

	mu     sync.Mutex
	engine *overlay.Engine
	conns  map[*conn]struct{}
}

// conn is one connected client with a mutex-guarded writer, since
// notifications fan out from the engine loop while control frames originate
// in the read pump.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(v)
}

// NewBridge creates a bridge staging onto the given loop.
func NewBridge(loop *overlay.Loop) *Bridge {
	return &Bridge{
		loop:  loop,
		conns: make(map[*conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The overlay endpoint binds to loopback for a local add-on
			// host; cross-origin checks belong to the embedding server.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// SetEngine attaches the engine the bridge feeds. Must be called before
// serving traffic.
func (b *Bridge) SetEngine(e *overlay.Engine) {
	b.mu.Lock()
	b.engine = e
	b.mu.Unlock()
}

// ServeHTTP implements http.Handler.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		overlay.Logger().Warn("transport: upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := &conn{ws: ws}

	b.mu.Lock()
	b.conns[c] = struct{}{}
	b.mu.Unlock()

	go b.readPump(c)
}

func (b *Bridge) readPump(c *conn) {
	defer func() {
		b.mu.Lock()
		delete(b.conns, c)
		b.mu.Unlock()
		_ = c.ws.Close()
	}()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				overlay.Logger().Warn("transport: read failed", "err", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			overlay.Logger().Warn("transport: bad envelope", "err", err)
			continue
		}
		b.stage(env)
	}
}

// stage posts an envelope onto the engine loop.
func (b *Bridge) stage(env Envelope) {
	b.mu.Lock()
	eng := b.engine
	b.mu.Unlock()
	if eng == nil {
		return
	}

	if len(env.Batch) > 0 {
		entries := make([]overlay.BatchEntry, len(env.Batch))
		for i, be := range env.Batch {
			entries[i] = overlay.BatchEntry{Command: be.Command, Args: be.Args}
		}
		b.loop.Post(func() { eng.Batch(entries) })
		return
	}

	b.loop.Post(func() { eng.Enqueue(env.ID, env.Command, env.Args...) })
}

// Notify fans an engine event out to every connected client. Intended as
// the engine's events hook; it runs on the engine loop, so writes that
// block on a slow client only hit that client's deadline.
func (b *Bridge) Notify(event, group string) {
	b.mu.Lock()
	conns := make([]*conn, 0, len(b.conns))
	for c := range b.conns {
		conns = append(conns, c)
	}
	b.mu.Unlock()

	n := Notification{Event: event, Group: group}
	for _, c := range conns {
		if err := c.writeJSON(n); err != nil {
			overlay.Logger().Warn("transport: notify failed", "event", event, "err", err)
		}
	}
}
