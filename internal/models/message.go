package models

import "fmt"

// Role identifies the author of a transcript entry
type Role string

const (
	// RoleClient is the human user
	RoleClient Role = "client"
	// RoleConsultant is the remote assistant
	RoleConsultant Role = "consultant"
)

// Label returns the display label for the role
func (r Role) Label() string {
	switch r {
	case RoleClient:
		return "You"
	case RoleConsultant:
		return "Consultant"
	default:
		return string(r)
	}
}

// Message is one transcript entry.
// The reply service reads the text from the "message" key.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"message"`
}

// NewClientMessage creates a message authored by the user
func NewClientMessage(text string) Message {
	return Message{Role: RoleClient, Text: text}
}

// NewConsultantMessage creates a message authored by the assistant
func NewConsultantMessage(text string) Message {
	return Message{Role: RoleConsultant, Text: text}
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Role.Label(), m.Text)
}

// CloneMessages returns a copy of msgs that never aliases the input.
// A nil or empty input yields an empty, non-nil slice so it encodes as [].
func CloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
