/*
This file defines the Client struct, one per live connection. It owns the
transport, the bounded outbound queue, and the read/write pumps that bridge
them. Per the isolation the design calls for, the writer never touches the
registry or any room: slow-client detection happens when a *producer*
(the room dispatcher) finds the outbound queue full, not inside the writer
itself.
*/
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"roomrelay/internal/pkg/errs"
	"roomrelay/internal/pkg/logx"
)

const (
	// writeWait bounds a single websocket write, including the terminal
	// direct-to-transport eviction frame.
	writeWait = 10 * time.Second

	// pongWait is the longest we wait for a pong before considering the
	// peer gone.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// readLimit is a generous outer ceiling on gorilla's own frame-size
	// guard; it exists purely to bound memory on a pathological peer. The
	// protocol's real 1 MiB business limit is enforced manually in
	// ReadPump so an oversize frame degrades to an `error` reply instead
	// of gorilla closing the connection outright.
	readLimit = 4 * maxFrameBytesDefault

	// maxFrameBytesDefault is the protocol's frame size ceiling (1 MiB).
	maxFrameBytesDefault = 1 << 20
)

// Client represents one accepted, possibly still-unnamed, connection.
type Client struct {
	conn *websocket.Conn
	reg  *Registry

	maxFrameBytes int

	// writeMu serializes the writer pump's normal writes against the
	// synchronous, queue-bypassing terminal eviction write; gorilla's
	// connection supports only one concurrent writer.
	writeMu sync.Mutex

	// send is the bounded outbound queue: buffered channel, offer-style
	// (non-blocking) sends, full-detection via select/default.
	send chan []byte

	mu       sync.RWMutex
	name     string
	rooms    map[string]struct{}
	evicted  bool
	sendOnce sync.Once

	logger zerolog.Logger
}

// NewClient constructs a Client around an already-upgraded connection.
func NewClient(conn *websocket.Conn, reg *Registry, outboundQueueSize, maxFrameBytes int) *Client {
	return &Client{
		conn:          conn,
		reg:           reg,
		maxFrameBytes: maxFrameBytes,
		send:          make(chan []byte, outboundQueueSize),
		rooms:         make(map[string]struct{}),
		logger:        logx.Logger().With().Str("component", "client").Logger(),
	}
}

// Name returns the client's display name, or "" if unnamed.
func (c *Client) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// setName assigns the display name. Called by set_username, and by join
// for a client that has no name yet.
func (c *Client) setName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()

	c.logger = c.logger.With().Str("client_name", name).Logger()
}

// joinedRooms returns a snapshot of the room IDs this client currently belongs to.
func (c *Client) joinedRooms() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (c *Client) addRoom(roomID string) {
	c.mu.Lock()
	c.rooms[roomID] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) removeRoom(roomID string) {
	c.mu.Lock()
	delete(c.rooms, roomID)
	c.mu.Unlock()
}

// offer attempts a non-blocking send of an already-marshaled envelope. It
// reports false if the outbound queue was full, the signal the dispatcher
// uses to trigger slow-client eviction.
func (c *Client) offer(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// sendEnvelope marshals an envelope and offers it to the outbound queue, logging
// (but not failing loudly) if the client is too slow to keep up on a
// direct reply path; fan-out overflow is handled separately by the room
// dispatcher's eviction logic.
func (c *Client) sendEnvelope(env any) {
	data, err := marshalEnvelope(env)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to marshal outbound envelope")
		return
	}

	if !c.offer(data) {
		c.logger.Warn().Msg("outbound queue full on direct reply, dropping frame")
	}
}

// sendError is a convenience wrapper building and sending an ErrorMsg.
func (c *Client) sendError(err *errs.CustomError) {
	c.sendEnvelope(NewErrorMsg(err.Message))
}

// evictDirect synchronously writes a terminal error frame straight to the
// transport, bypassing the outbound queue entirely, then closes the
// connection. Used only by the slow-client eviction path, where the queue
// itself is the thing that's full.
func (c *Client) evictDirect(message string) {
	c.mu.Lock()
	if c.evicted {
		c.mu.Unlock()
		return
	}
	c.evicted = true
	c.mu.Unlock()

	data, err := marshalEnvelope(NewErrorMsg(message))
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to marshal eviction frame")
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("failed to set write deadline for eviction frame")
		return
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.logger.Warn().Err(err).Msg("failed to write eviction frame")
	}

	_ = c.conn.Close()
}

// ReadPump reads frames from the transport, enforces the frame size limit,
// decodes the envelope, and dispatches to the registered action handler.
// It returns (and the caller unregisters the client) on transport close,
// explicit peer close, or cancellation.
func (c *Client) ReadPump(ctx context.Context) {
	c.conn.SetReadLimit(int64(readLimit))

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("failed to set initial read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("connection closed unexpectedly")
			}
			return
		}

		if len(raw) > c.maxFrameBytes {
			c.sendError(errs.NewError(errs.ErrFrameTooLarge, c.maxFrameBytes))
			continue
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.sendError(errs.NewError(errs.ErrInvalidJSON))
			continue
		}

		dispatch(c, frame)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// WritePump drains the outbound queue to the transport. It terminates
// quietly on a closed channel (unregister) or a write failure, and never
// touches the registry or any room — exactly the isolation slow-client
// detection depends on.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !c.writeFrame(data, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

func (c *Client) writeFrame(data []byte, ok bool) bool {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}

	if !ok {
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return false
	}

	return true
}

func (c *Client) writePing() bool {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}

	return c.conn.WriteMessage(websocket.PingMessage, nil) == nil
}

// closeSend closes the outbound queue so WritePump drains its close
// branch and exits promptly instead of waiting for its next failed write.
// Safe to call more than once.
func (c *Client) closeSend() {
	c.sendOnce.Do(func() {
		close(c.send)
	})
}

// Close closes the underlying transport. Called once unregister has run.
func (c *Client) Close() {
	_ = c.conn.Close()
}
