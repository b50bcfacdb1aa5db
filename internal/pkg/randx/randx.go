/*
Package randx provides identifier generation used across the chat engine.

RoomID draws from a random UUID and truncates it to 8 hex characters, per
the data model's room ID contract.
*/
package randx

import "github.com/google/uuid"

// RoomIDLength is the fixed length of a generated room ID.
const RoomIDLength = 8

// RoomID generates an 8-hex-character room identifier drawn from a
// random UUID.
func RoomID() string {
	return uuid.New().String()[:RoomIDLength]
}
