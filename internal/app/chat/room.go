/*
This file defines the Room struct and its dispatcher: the single task per
room that drains the room's unbounded inbound queue and fans each event out
to every current member's outbound queue. A full outbound queue marks that
member as too slow; it is evicted synchronously from within the fan-out
loop rather than asynchronously, so eviction happens before the dispatcher
moves on to the next member.
*/
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"roomrelay/internal/pkg/errs"
	"roomrelay/internal/pkg/logx"
	"roomrelay/internal/pkg/metrics"
	"roomrelay/internal/pkg/randx"
)

// Room is one created room: its membership, its inbound event queue, and
// the dispatcher draining it. Rooms are never destroyed in this design;
// once created, a room persists for the lifetime of the process.
type Room struct {
	ID   string
	Name string

	reg   *Registry
	queue *roomQueue

	mu      sync.RWMutex
	members map[*Client]struct{}

	ctx    context.Context
	cancel context.CancelFunc

	logger zerolog.Logger
}

func newRoom(reg *Registry, name string) *Room {
	ctx, cancel := context.WithCancel(context.Background())

	id := randx.RoomID()

	return &Room{
		ID:      id,
		Name:    name,
		reg:     reg,
		queue:   newRoomQueue(),
		members: make(map[*Client]struct{}),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logx.Logger().With().Str("component", "room").Str("room_id", id).Logger(),
	}
}

// post appends an event to the room's inbound queue without blocking.
func (r *Room) post(event any) {
	r.queue.put(event)
}

// addMember inserts c into the member set and the client's joined-rooms
// set, synchronously, before the caller posts any event about it — the
// ordering the design notes require for user_joined visibility.
func (r *Room) addMember(c *Client) {
	r.mu.Lock()
	r.members[c] = struct{}{}
	count := len(r.members)
	r.mu.Unlock()

	c.addRoom(r.ID)
	metrics.RoomMembers.WithLabelValues(r.ID).Set(float64(count))
}

// hasMember reports whether c is currently a member.
func (r *Room) hasMember(c *Client) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.members[c]
	return ok
}

// removeMember removes c from the member set and the client's
// joined-rooms set. If notify is true and the client has a known name, a
// user_left event is posted for broadcast — used both by voluntary leave
// and by unregister-on-disconnect.
func (r *Room) removeMember(c *Client, notify bool) {
	r.mu.Lock()
	_, was := r.members[c]
	delete(r.members, c)
	count := len(r.members)
	r.mu.Unlock()

	if !was {
		return
	}

	c.removeRoom(r.ID)
	metrics.RoomMembers.WithLabelValues(r.ID).Set(float64(count))

	name := c.Name()
	if notify && name != "" {
		r.post(UserEventMsg{
			Action: "user_left",
			RoomID: r.ID,
			User:   name,
			Ts:     time.Now().Unix(),
		})
	}
}

func (r *Room) memberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members)
}

// snapshotMembers returns the current member set as a slice, taken once
// per dispatched event so a client joining or leaving mid-iteration sees
// the documented edge behavior (miss the event, or still be offered it).
func (r *Room) snapshotMembers() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.members))
	for c := range r.members {
		out = append(out, c)
	}
	return out
}

// run is the dispatcher loop: one task per room, serializing events in
// inbound-queue FIFO order and fanning each one out to every current
// member via a non-blocking enqueue.
func (r *Room) run() {
	r.logger.Info().Msg("room dispatcher started")

	for {
		event, ok := r.queue.get(r.ctx)
		if !ok {
			r.queue.drain()
			r.logger.Info().Msg("room dispatcher cancelled, queue drained")
			return
		}

		data, err := marshalEnvelope(event)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to marshal room event for fan-out")
			continue
		}

		for _, member := range r.snapshotMembers() {
			if member.offer(data) {
				metrics.FanoutEvents.WithLabelValues("delivered").Inc()
				continue
			}

			metrics.FanoutEvents.WithLabelValues("evicted").Inc()
			metrics.SlowClientEvictions.Inc()

			r.logger.Warn().Str("client_name", member.Name()).Msg("client too slow, evicting")

			member.evictDirect(errs.NewError(errs.ErrTooSlow).Message)
			r.reg.UnregisterClient(member)
		}
	}
}

// stop cancels the dispatcher; its next queue.get call returns immediately
// and the loop drains and exits.
func (r *Room) stop() {
	r.cancel()
}
