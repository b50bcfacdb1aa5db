package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnvelope_DoesNotEscapeHTML(t *testing.T) {
	data, err := marshalEnvelope(ChatMessageMsg{
		Action: "message",
		RoomID: "abc123",
		From:   "alice",
		Text:   "<b>hi</b> & goodbye",
	})
	require.NoError(t, err)

	assert.Contains(t, string(data), "<b>hi</b> & goodbye")
	assert.NotContains(t, string(data), "\\u003c")
}

func TestMarshalEnvelope_NoTrailingNewline(t *testing.T) {
	data, err := marshalEnvelope(NewWelcomeMsg())
	require.NoError(t, err)

	assert.NotEqual(t, byte('\n'), data[len(data)-1])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "welcome", decoded["action"])
}

func TestUserEventMsg_EnvelopeActionReflectsField(t *testing.T) {
	joined := UserEventMsg{Action: "user_joined", RoomID: "r1", User: "alice"}
	left := UserEventMsg{Action: "user_left", RoomID: "r1", User: "alice"}

	assert.Equal(t, "user_joined", joined.envelopeAction())
	assert.Equal(t, "user_left", left.envelopeAction())
}

func TestNewErrorMsg(t *testing.T) {
	msg := NewErrorMsg("Too slow, disconnecting.")

	assert.Equal(t, "error", msg.Action)
	assert.Equal(t, "Too slow, disconnecting.", msg.Message)
}
