/*
This file implements the seven action handlers and the fixed dispatch
table that routes a decoded frame's `action` field to one of them. Modeled
as a fixed map rather than scattered conditionals in the connection loop,
per the design's dispatch-table note.
*/
package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"roomrelay/internal/pkg/errs"
	"roomrelay/internal/pkg/metrics"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20

	defaultRoomName = "Untitled"
)

type actionHandler func(c *Client, frame inboundFrame)

var actionHandlers = map[string]actionHandler{
	"set_username":    handleSetUsername,
	"create_room":     handleCreateRoom,
	"list_rooms":      handleListRooms,
	"join":            handleJoin,
	"leave":           handleLeave,
	"message":         handleMessage,
	"private_message": handlePrivateMessage,
}

// dispatch routes a decoded frame to its registered handler, converting
// any panic inside the handler into a user-visible error frame instead of
// letting it escape to the connection loop — no error ever propagates out
// of an action handler except via this generic catch.
func dispatch(c *Client, frame inboundFrame) {
	handler, ok := actionHandlers[frame.Action]
	if !ok {
		metrics.ActionsHandled.WithLabelValues(frame.Action, "unknown").Inc()
		c.sendError(errs.NewError(errs.ErrUnknownAction, frame.Action))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			metrics.ActionsHandled.WithLabelValues(frame.Action, "panic").Inc()
			detail := truncate(fmt.Sprintf("%v", r), 100)
			c.sendError(errs.NewError(errs.ErrHandlerPanic, detail))
		}
	}()

	handler(c, frame)
	metrics.ActionsHandled.WithLabelValues(frame.Action, "ok").Inc()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// handleSetUsername assigns the client's display name. A client may call
// this only once successfully: rejecting a second attempt on an
// already-named client, rather than silently leaving the old name
// reserved, is the spec-preserving resolution of the source's open
// question on repeated set_username calls.
func handleSetUsername(c *Client, frame inboundFrame) {
	if c.Name() != "" {
		c.sendError(errs.NewError(errs.ErrAlreadyNamed))
		return
	}

	username := strings.TrimSpace(frame.Username)

	if username == "" {
		c.sendError(errs.NewError(errs.ErrUsernameEmpty))
		return
	}

	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		c.sendError(errs.NewError(errs.ErrUsernameLength))
		return
	}

	if !c.reg.ReserveName(c, username) {
		c.sendError(errs.NewError(errs.ErrUsernameTaken, username))
		return
	}

	c.setName(username)

	c.sendEnvelope(UsernameSetMsg{
		Action:   "username_set",
		Username: username,
		Message:  fmt.Sprintf("Welcome, %s!", username),
	})
}

// handleCreateRoom creates a fresh room and starts its dispatcher.
// Creation does not automatically join the creator.
func handleCreateRoom(c *Client, frame inboundFrame) {
	name := frame.Name
	if name == "" {
		name = defaultRoomName
	}

	room := c.reg.CreateRoom(name)

	c.sendEnvelope(RoomCreatedMsg{
		Action: "room_created",
		Room:   RoomInfo{ID: room.ID, Name: room.Name},
	})
}

// handleListRooms replies with a snapshot of every room's {id, name, members}.
func handleListRooms(c *Client, frame inboundFrame) {
	c.sendEnvelope(RoomsListMsg{
		Action: "rooms_list",
		Rooms:  c.reg.ListRooms(),
	})
}

// handleJoin adds the client to a room's member set and posts user_joined
// for broadcast. The display_name field is honored only for a still-unnamed
// client; per the spec-preserving resolution of the source's open
// question, an already-named client's display_name field on join is
// ignored rather than silently overwriting the in-room name.
func handleJoin(c *Client, frame inboundFrame) {
	if frame.RoomID == "" {
		c.sendError(errs.NewError(errs.ErrRoomIDMissing))
		return
	}

	room, ok := c.reg.GetRoom(frame.RoomID)
	if !ok {
		c.sendError(errs.NewError(errs.ErrRoomNotFound, frame.RoomID))
		return
	}

	if room.hasMember(c) {
		c.sendError(errs.NewError(errs.ErrAlreadyMember, frame.RoomID))
		return
	}

	if c.Name() == "" && frame.DisplayName != "" {
		c.setName(frame.DisplayName)
	}

	room.addMember(c)

	c.sendEnvelope(JoinedMsg{
		Action: "joined",
		Room:   RoomInfo{ID: room.ID, Name: room.Name},
	})

	room.post(UserEventMsg{
		Action: "user_joined",
		RoomID: room.ID,
		User:   c.Name(),
		Ts:     time.Now().Unix(),
	})
}

// handleLeave removes the client from a room's member set. Unknown rooms
// and rooms the client is not a member of are silent no-ops; only a
// missing room_id is an error to the sender.
func handleLeave(c *Client, frame inboundFrame) {
	if frame.RoomID == "" {
		c.sendError(errs.NewError(errs.ErrRoomIDMissing))
		return
	}

	room, ok := c.reg.GetRoom(frame.RoomID)
	if !ok {
		return
	}

	room.removeMember(c, true)
}

// handleMessage posts a room broadcast event into the room's inbound queue.
// Empty text is accepted, per the spec-preserving resolution of the
// source's open question on empty message text.
func handleMessage(c *Client, frame inboundFrame) {
	if frame.RoomID == "" {
		c.sendError(errs.NewError(errs.ErrRoomIDMissing))
		return
	}

	room, ok := c.reg.GetRoom(frame.RoomID)
	if !ok {
		c.sendError(errs.NewError(errs.ErrRoomNotFound, frame.RoomID))
		return
	}

	if !room.hasMember(c) {
		c.sendError(errs.NewError(errs.ErrNotMember, frame.RoomID))
		return
	}

	room.post(ChatMessageMsg{
		Action: "message",
		RoomID: room.ID,
		From:   c.Name(),
		Text:   frame.Text,
		Ts:     time.Now().Unix(),
	})
}

// handlePrivateMessage delivers text directly into the recipient's
// outbound queue, bypassing any room, and confirms delivery to the sender.
func handlePrivateMessage(c *Client, frame inboundFrame) {
	if frame.To == "" {
		c.sendError(errs.NewError(errs.ErrRecipientMissing))
		return
	}

	if frame.Text == "" {
		c.sendError(errs.NewError(errs.ErrMessageTextEmpty))
		return
	}

	recipient, ok := c.reg.LookupName(frame.To)
	if !ok {
		c.sendError(errs.NewError(errs.ErrRecipientOffline, frame.To))
		return
	}

	now := time.Now().Unix()

	recipient.sendEnvelope(PrivateMessageMsg{
		Action: "private_message",
		From:   c.Name(),
		To:     frame.To,
		Text:   frame.Text,
		Ts:     now,
	})

	c.sendEnvelope(PrivateMessageSentMsg{
		Action: "private_message_sent",
		To:     frame.To,
		Text:   frame.Text,
		Ts:     now,
	})
}
