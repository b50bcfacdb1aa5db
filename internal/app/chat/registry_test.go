package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a Client with no live transport, suitable for tests
// that exercise registry/room bookkeeping without ever draining the writer
// pump. Reading directly from c.send lets a test observe what would have
// been written to the wire.
func newTestClient(reg *Registry) *Client {
	return NewClient(nil, reg, 8, maxFrameBytesDefault)
}

func TestRegistry_ReserveName_UniqueAcrossClients(t *testing.T) {
	reg := NewRegistry()
	a := newTestClient(reg)
	b := newTestClient(reg)

	assert.True(t, reg.ReserveName(a, "alice"))
	assert.False(t, reg.ReserveName(b, "alice"))

	owner, ok := reg.LookupName("alice")
	require.True(t, ok)
	assert.Equal(t, a, owner)
}

func TestRegistry_UnregisterClient_ReleasesName(t *testing.T) {
	reg := NewRegistry()
	a := newTestClient(reg)
	reg.RegisterClient(a)
	require.True(t, reg.ReserveName(a, "alice"))
	a.setName("alice")

	reg.UnregisterClient(a)

	_, ok := reg.LookupName("alice")
	assert.False(t, ok)

	b := newTestClient(reg)
	assert.True(t, reg.ReserveName(b, "alice"), "name should be free after owner unregisters")
}

func TestRegistry_UnregisterClient_Idempotent(t *testing.T) {
	reg := NewRegistry()
	a := newTestClient(reg)
	reg.RegisterClient(a)

	reg.UnregisterClient(a)
	assert.NotPanics(t, func() { reg.UnregisterClient(a) })
}

func TestRegistry_UnregisterClient_ClosesSendChannel(t *testing.T) {
	reg := NewRegistry()
	a := newTestClient(reg)
	reg.RegisterClient(a)

	reg.UnregisterClient(a)

	_, ok := <-a.send
	assert.False(t, ok, "send channel should be closed after unregister")
}

func TestRegistry_UnregisterClient_LeavesJoinedRooms(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(reg.Shutdown)

	room := reg.CreateRoom("general")

	a := newTestClient(reg)
	a.setName("alice")
	reg.RegisterClient(a)
	room.addMember(a)
	require.True(t, room.hasMember(a))

	reg.UnregisterClient(a)

	assert.False(t, room.hasMember(a))
}

func TestRegistry_CreateRoom_ListRoomsSortedByID(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(reg.Shutdown)

	reg.CreateRoom("c")
	reg.CreateRoom("a")
	reg.CreateRoom("b")

	entries := reg.ListRooms()
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i-1].ID < entries[i].ID)
	}
}

func TestRegistry_GetRoom_UnknownIDNotFound(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(reg.Shutdown)

	_, ok := reg.GetRoom("does-not-exist")
	assert.False(t, ok)
}
