/*
This file defines the Registry, the single mutex-guarded coordinator for
the three process-wide tables the rest of the package reads and mutates:
live clients, live rooms, and the unique display-name index. Every
cross-table operation (register, unregister, join, leave, eviction) takes
the registry's lock once and performs its reads and writes as one logical
step, so no observer ever sees a partially-applied transition.
*/
package chat

import (
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"roomrelay/internal/pkg/logx"
	"roomrelay/internal/pkg/metrics"
)

// Registry owns the clients table, the rooms table, and the unique-name
// index, and is the only object any goroutine in this package shares.
type Registry struct {
	mu sync.RWMutex

	clients map[*Client]struct{}
	rooms   map[string]*Room
	names   map[string]*Client

	logger zerolog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]*Room),
		names:   make(map[string]*Client),
		logger:  logx.Logger().With().Str("component", "registry").Logger(),
	}
}

// Connect is the connection handler's start state: it wraps an
// already-upgraded transport in a Client, registers it, starts its writer
// task, and emits the welcome frame. The caller is expected to run
// ReadPump next (blocking) and to call UnregisterClient once it returns.
func (reg *Registry) Connect(conn *websocket.Conn, outboundQueueSize, maxFrameBytes int) *Client {
	c := NewClient(conn, reg, outboundQueueSize, maxFrameBytes)

	reg.RegisterClient(c)

	go c.WritePump()

	c.sendEnvelope(NewWelcomeMsg())

	return c
}

// RegisterClient adds a newly accepted connection to the clients table.
func (reg *Registry) RegisterClient(c *Client) {
	reg.mu.Lock()
	reg.clients[c] = struct{}{}
	reg.mu.Unlock()

	metrics.ClientsConnected.Inc()
}

// UnregisterClient removes c from the clients table, releases its name,
// and leaves every room it had joined (posting user_left to each as if a
// voluntary leave). Safe to call from the connection handler's
// termination path or the slow-client eviction path, and idempotent: a
// second call for an already-removed client is a no-op.
func (reg *Registry) UnregisterClient(c *Client) {
	reg.mu.Lock()

	if _, ok := reg.clients[c]; !ok {
		reg.mu.Unlock()
		return
	}
	delete(reg.clients, c)

	name := c.Name()
	if name != "" {
		if owner, ok := reg.names[name]; ok && owner == c {
			delete(reg.names, name)
		}
	}

	joined := c.joinedRooms()
	var rooms []*Room
	for _, roomID := range joined {
		if room, ok := reg.rooms[roomID]; ok {
			rooms = append(rooms, room)
		}
	}

	for _, room := range rooms {
		room.removeMember(c, true)
	}

	reg.mu.Unlock()

	c.closeSend()

	metrics.ClientsConnected.Dec()
}

// ReserveName atomically checks and reserves a display name for c. It
// returns false if the name is already held by any client, c included.
func (reg *Registry) ReserveName(c *Client, name string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, taken := reg.names[name]; taken {
		return false
	}

	reg.names[name] = c
	return true
}

// LookupName returns the client currently holding name, if any.
func (reg *Registry) LookupName(name string) (*Client, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	c, ok := reg.names[name]
	return c, ok
}

// CreateRoom constructs and registers a new room with a freshly generated
// ID, starts its dispatcher, and returns it.
func (reg *Registry) CreateRoom(name string) *Room {
	room := newRoom(reg, name)

	reg.mu.Lock()
	reg.rooms[room.ID] = room
	reg.mu.Unlock()

	go room.run()

	metrics.RoomsActive.Inc()
	reg.logger.Info().Str("room_id", room.ID).Str("room_name", name).Msg("room created")

	return room
}

// GetRoom looks up a room by ID.
func (reg *Registry) GetRoom(roomID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	room, ok := reg.rooms[roomID]
	return room, ok
}

// ListRooms returns a point-in-time snapshot of every room's {id, name, members}.
func (reg *Registry) ListRooms() []RoomListEntry {
	reg.mu.RLock()
	roomList := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		roomList = append(roomList, room)
	}
	reg.mu.RUnlock()

	entries := make([]RoomListEntry, 0, len(roomList))
	for _, room := range roomList {
		entries = append(entries, RoomListEntry{
			ID:      room.ID,
			Name:    room.Name,
			Members: room.memberCount(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	return entries
}

// Shutdown stops every room dispatcher. Used by graceful server shutdown.
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.Unlock()

	for _, room := range rooms {
		room.stop()
	}
}
