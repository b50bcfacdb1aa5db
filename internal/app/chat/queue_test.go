package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomQueue_FIFOOrder(t *testing.T) {
	q := newRoomQueue()
	ctx := context.Background()

	q.put("first")
	q.put("second")
	q.put("third")

	for _, want := range []string{"first", "second", "third"} {
		item, ok := q.get(ctx)
		require.True(t, ok)
		assert.Equal(t, want, item)
	}
}

func TestRoomQueue_PutNeverBlocks(t *testing.T) {
	q := newRoomQueue()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			q.put(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("put blocked under load")
	}
}

func TestRoomQueue_GetBlocksUntilItem(t *testing.T) {
	q := newRoomQueue()
	ctx := context.Background()

	result := make(chan any, 1)
	go func() {
		item, ok := q.get(ctx)
		if ok {
			result <- item
		}
	}()

	select {
	case <-result:
		t.Fatal("get returned before any item was put")
	case <-time.After(50 * time.Millisecond):
	}

	q.put("late arrival")

	select {
	case item := <-result:
		assert.Equal(t, "late arrival", item)
	case <-time.After(time.Second):
		t.Fatal("get never returned after put")
	}
}

func TestRoomQueue_GetReturnsOnContextCancel(t *testing.T) {
	q := newRoomQueue()
	ctx, cancel := context.WithCancel(context.Background())

	result := make(chan bool, 1)
	go func() {
		_, ok := q.get(ctx)
		result <- ok
	}()

	cancel()

	select {
	case ok := <-result:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("get did not return after context cancellation")
	}
}

func TestRoomQueue_Drain(t *testing.T) {
	q := newRoomQueue()

	q.put(1)
	q.put(2)
	q.put(3)

	items := q.drain()
	assert.Equal(t, []any{1, 2, 3}, items)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := q.get(ctx)
	assert.False(t, ok, "queue should be empty and ctx already cancelled")
}
