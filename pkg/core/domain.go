// Package core holds the domain model of pasty: per-user keys, encrypted notes
// and the service that composes them.
package core

// KeySize is the length in bytes of a user key.
const KeySize = 32

// Key is the symmetric key that seals every note of a single user.
type Key [KeySize]byte

// Attachment is a note framed as a named downloadable file.
type Attachment struct {
	Filename string
	Content  []byte
}

// Stats aggregates counts across every user of the store.
type Stats struct {
	Notes int `json:"notes"`
	Users int `json:"users"`
}

// EventType represents the type of change observed in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a single note.
type Event struct {
	Type      EventType
	UserID    string
	Name      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.UserID + "/" + e.Name
}
