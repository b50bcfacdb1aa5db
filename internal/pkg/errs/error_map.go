/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
render consistent `error` frame payloads and for internal error handling.
*/
package errs

// errorMap stores the template CustomError for every application error code.
// The key is the error code; the value carries the user-facing message. Some
// messages carry a printf placeholder, filled in by NewError's details param.
var errorMap = map[int]CustomError{
	// 1xxx: protocol-level errors
	ErrFrameTooLarge:  {Code: ErrFrameTooLarge, Message: "Message too large. Max size: %d bytes"},
	ErrInvalidJSON:    {Code: ErrInvalidJSON, Message: "Message is not valid JSON."},
	ErrUnknownAction:  {Code: ErrUnknownAction, Message: "Unknown action: %s"},
	ErrHandlerPanic:   {Code: ErrHandlerPanic, Message: "handler error: %s"},

	// 2xxx: set_username errors
	ErrUsernameEmpty:  {Code: ErrUsernameEmpty, Message: "Display name must not be empty."},
	ErrUsernameLength: {Code: ErrUsernameLength, Message: "Display name must be between 3 and 20 characters."},
	ErrUsernameTaken:  {Code: ErrUsernameTaken, Message: "Display name '%s' is already taken."},
	ErrAlreadyNamed:   {Code: ErrAlreadyNamed, Message: "Display name has already been set for this connection."},

	// 3xxx: room errors
	ErrRoomIDMissing:  {Code: ErrRoomIDMissing, Message: "Missing required field: room_id"},
	ErrRoomNotFound:   {Code: ErrRoomNotFound, Message: "Room '%s' does not exist."},
	ErrAlreadyMember:  {Code: ErrAlreadyMember, Message: "Already a member of room '%s'."},
	ErrNotMember:      {Code: ErrNotMember, Message: "Not a member of room '%s'."},

	// 4xxx: private_message errors
	ErrRecipientMissing: {Code: ErrRecipientMissing, Message: "Missing required field: to"},
	ErrMessageTextEmpty: {Code: ErrMessageTextEmpty, Message: "Message text must not be empty."},
	ErrRecipientOffline: {Code: ErrRecipientOffline, Message: "User '%s' is not online."},

	// 5xxx: terminal and system errors
	ErrTooSlow: {Code: ErrTooSlow, Message: "Too slow, disconnecting."},
	ErrUnknown: {Code: ErrUnknown, Message: "An unexpected server error occurred."},
}
