package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomID_Length(t *testing.T) {
	id := RoomID()

	assert.Len(t, id, RoomIDLength)
}

func TestRoomID_Unique(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		id := RoomID()
		_, dup := seen[id]
		assert.False(t, dup, "unexpected room id collision: %s", id)
		seen[id] = struct{}{}
	}
}
