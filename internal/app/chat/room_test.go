package chat

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom_AddMember_UpdatesBothSides(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(reg.Shutdown)
	room := reg.CreateRoom("general")
	c := newTestClient(reg)

	room.addMember(c)

	assert.True(t, room.hasMember(c))
	assert.Contains(t, c.joinedRooms(), room.ID)
	assert.Equal(t, 1, room.memberCount())
}

func TestRoom_RemoveMember_PostsUserLeftOnlyWhenNamed(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(reg.Shutdown)
	room := reg.CreateRoom("general")

	unnamed := newTestClient(reg)
	room.addMember(unnamed)
	room.removeMember(unnamed, true)
	assert.Equal(t, 0, room.memberCount())

	named := newTestClient(reg)
	named.setName("alice")
	observer := newTestClient(reg)
	observer.setName("observer")
	room.addMember(named)
	room.addMember(observer)

	room.removeMember(named, true)

	var got map[string]any
	select {
	case data := <-observer.send:
		require.NoError(t, json.Unmarshal(data, &got))
	case <-time.After(time.Second):
		t.Fatal("observer never received user_left")
	}
	assert.Equal(t, "user_left", got["action"])
	assert.Equal(t, "alice", got["user"])
}

func TestRoom_RemoveMember_NotAMemberIsNoOp(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(reg.Shutdown)
	room := reg.CreateRoom("general")
	c := newTestClient(reg)

	assert.NotPanics(t, func() { room.removeMember(c, true) })
	assert.Equal(t, 0, room.memberCount())
}

func TestRoom_Dispatcher_FansOutToAllMembers(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(reg.Shutdown)
	room := reg.CreateRoom("general")

	alice := newTestClient(reg)
	alice.setName("alice")
	bob := newTestClient(reg)
	bob.setName("bob")
	room.addMember(alice)
	room.addMember(bob)

	room.post(ChatMessageMsg{Action: "message", RoomID: room.ID, From: "alice", Text: "hi"})

	for _, c := range []*Client{alice, bob} {
		select {
		case data := <-c.send:
			var got map[string]any
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, "message", got["action"])
			assert.Equal(t, "hi", got["text"])
		case <-time.After(time.Second):
			t.Fatalf("client %s never received the fanned-out message", c.Name())
		}
	}
}

func TestRoom_SnapshotMembers_ContainsAllMembers(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(reg.Shutdown)
	room := reg.CreateRoom("general")

	c1 := newTestClient(reg)
	c2 := newTestClient(reg)
	room.addMember(c1)
	room.addMember(c2)

	snapshot := room.snapshotMembers()
	assert.Len(t, snapshot, 2)
	assert.Contains(t, snapshot, c1)
	assert.Contains(t, snapshot, c2)
}
