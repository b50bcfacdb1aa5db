/*
Package chat contains the core logic for the multi-room chat engine: the
registry of clients, rooms and names, the per-room fan-out dispatcher, and
the per-client read/write pumps that bridge it to the websocket transport.

This file defines the wire envelopes exchanged with clients (§6 of the
protocol): one struct per server→client action, each carrying its own
`action` field so a single json.Marshal produces the exact frame shape.
*/
package chat

import (
	"bytes"
	"encoding/json"
)

// Envelope is implemented by every outbound frame type; envelopeAction reports the
// frame's wire-protocol discriminator for logging and tests.
type Envelope interface {
	envelopeAction() string
}

// marshalEnvelope encodes an outbound frame with HTML-escaping disabled,
// so literal characters like '<', '>', '&' in a username or message body
// pass through unescaped — matching json.dumps(obj, ensure_ascii=False).
func marshalEnvelope(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	// json.Encoder.Encode appends a trailing newline; trim it so the
	// frame is exactly one JSON object.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WelcomeMsg greets a newly accepted connection before it has a name.
type WelcomeMsg struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

func (WelcomeMsg) envelopeAction() string { return "welcome" }

// NewWelcomeMsg builds the frame sent immediately after a connection is registered.
func NewWelcomeMsg() WelcomeMsg {
	return WelcomeMsg{
		Action:  "welcome",
		Message: "Welcome to chat! Please choose a unique username (3-20 characters).",
	}
}

// UsernameSetMsg confirms a successful set_username.
type UsernameSetMsg struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

func (UsernameSetMsg) envelopeAction() string { return "username_set" }

// RoomInfo is the {id, name} pair carried by room_created and joined frames.
type RoomInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomCreatedMsg confirms a successful create_room.
type RoomCreatedMsg struct {
	Action string   `json:"action"`
	Room   RoomInfo `json:"room"`
}

func (RoomCreatedMsg) envelopeAction() string { return "room_created" }

// RoomListEntry is one row of a rooms_list reply.
type RoomListEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// RoomsListMsg answers list_rooms.
type RoomsListMsg struct {
	Action string          `json:"action"`
	Rooms  []RoomListEntry `json:"rooms"`
}

func (RoomsListMsg) envelopeAction() string { return "rooms_list" }

// JoinedMsg confirms a successful join to the sender.
type JoinedMsg struct {
	Action string   `json:"action"`
	Room   RoomInfo `json:"room"`
}

func (JoinedMsg) envelopeAction() string { return "joined" }

// UserEventMsg carries both user_joined and user_left broadcasts; Action
// distinguishes the two.
type UserEventMsg struct {
	Action string `json:"action"`
	RoomID string `json:"room_id"`
	User   string `json:"user"`
	Ts     int64  `json:"ts"`
}

func (m UserEventMsg) envelopeAction() string { return m.Action }

// ChatMessageMsg is a room broadcast posted by the message action.
type ChatMessageMsg struct {
	Action string `json:"action"`
	RoomID string `json:"room_id"`
	From   string `json:"from"`
	Text   string `json:"text"`
	Ts     int64  `json:"ts"`
}

func (ChatMessageMsg) envelopeAction() string { return "message" }

// PrivateMessageMsg is delivered to the recipient of a private_message.
type PrivateMessageMsg struct {
	Action string `json:"action"`
	From   string `json:"from"`
	To     string `json:"to"`
	Text   string `json:"text"`
	Ts     int64  `json:"ts"`
}

func (PrivateMessageMsg) envelopeAction() string { return "private_message" }

// PrivateMessageSentMsg confirms a private_message to its sender.
type PrivateMessageSentMsg struct {
	Action string `json:"action"`
	To     string `json:"to"`
	Text   string `json:"text"`
	Ts     int64  `json:"ts"`
}

func (PrivateMessageSentMsg) envelopeAction() string { return "private_message_sent" }

// ErrorMsg is the generic error frame; Message carries the user-facing text.
type ErrorMsg struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

func (ErrorMsg) envelopeAction() string { return "error" }

// NewErrorMsg builds an error frame from a plain message string.
func NewErrorMsg(message string) ErrorMsg {
	return ErrorMsg{Action: "error", Message: message}
}

// inboundFrame is the shape every client->server frame is first decoded
// into: a discriminator plus the union of every action's fields (each
// handler reads the ones it needs), dispatched to the handler registered
// for Action.
type inboundFrame struct {
	Action string `json:"action"`

	Username    string `json:"username"`
	Name        string `json:"name"`
	RoomID      string `json:"room_id"`
	DisplayName string `json:"display_name"`
	Text        string `json:"text"`
	To          string `json:"to"`
}
