/*
Package errs provides custom error types and application-level error code constants.

These error codes identify the client-input, protocol, and slow-client error
kinds reported through the chat protocol's `error` frame. They are used for
internal branching; the frame itself carries only the message text.
*/
package errs

// 1xxx: protocol-level errors — malformed or oversize frames, unknown actions.
const (
	// ErrFrameTooLarge indicates an incoming frame exceeded the maximum frame size.
	ErrFrameTooLarge = 1001

	// ErrInvalidJSON indicates the frame body could not be parsed as JSON.
	ErrInvalidJSON = 1002

	// ErrUnknownAction indicates the frame's `action` field has no registered handler.
	ErrUnknownAction = 1003

	// ErrHandlerPanic indicates an action handler panicked while processing a frame.
	ErrHandlerPanic = 1004
)

// 2xxx: set_username errors.
const (
	// ErrUsernameEmpty indicates the requested display name was blank or whitespace-only.
	ErrUsernameEmpty = 2001

	// ErrUsernameLength indicates the requested display name violated the length bounds.
	ErrUsernameLength = 2002

	// ErrUsernameTaken indicates the requested display name is already in use.
	ErrUsernameTaken = 2003

	// ErrAlreadyNamed indicates the client already has a display name set.
	ErrAlreadyNamed = 2004
)

// 3xxx: room errors — create_room, list_rooms, join, leave, message.
const (
	// ErrRoomIDMissing indicates the frame omitted a required room id.
	ErrRoomIDMissing = 3001

	// ErrRoomNotFound indicates no room exists with the given id.
	ErrRoomNotFound = 3002

	// ErrAlreadyMember indicates the client is already a member of the room.
	ErrAlreadyMember = 3003

	// ErrNotMember indicates the client attempted a room operation without membership.
	ErrNotMember = 3004
)

// 4xxx: private_message errors.
const (
	// ErrRecipientMissing indicates the frame omitted a required recipient name.
	ErrRecipientMissing = 4001

	// ErrMessageTextEmpty indicates the message text was blank.
	ErrMessageTextEmpty = 4002

	// ErrRecipientOffline indicates the named recipient is not currently connected.
	ErrRecipientOffline = 4003
)

// 5xxx: terminal and system errors.
const (
	// ErrTooSlow indicates the client is being disconnected for an overflowing outbound queue.
	ErrTooSlow = 5001

	// ErrUnknown is the fallback for an unrecognized error code.
	ErrUnknown = 5999
)
