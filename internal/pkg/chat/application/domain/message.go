package chat

import (
	"errors"
	"strings"
	"time"
)

// Domain-level errors for chat behaviors
var (
	ErrInvalidParticipant = errors.New("chat: invalid participant")
	ErrSelfMessage        = errors.New("chat: sender and receiver are the same participant")
	ErrEmptyMessage       = errors.New("chat: empty message body")
)

// Message is an immutable log entry between two participants. Only the Read
// flag ever changes after creation, and only false -> true.
type Message struct {
	ID        int64       `db:"id"`
	Sender    Participant `db:"sender"`
	Receiver  Participant `db:"receiver"`
	Content   string      `db:"content"`
	CreatedAt time.Time   `db:"created_at"`
	Read      bool        `db:"read"`
}

// NewMessage validates and normalizes a message ready to persist.
// The ID and authoritative CreatedAt are assigned by the store.
func NewMessage(sender, receiver Participant, content string) (*Message, error) {
	if !sender.Valid() || !receiver.Valid() {
		return nil, ErrInvalidParticipant
	}
	if sender == receiver {
		return nil, ErrSelfMessage
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	return &Message{
		Sender:    sender,
		Receiver:  receiver,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// TypingSignal is transient: never persisted, only relayed while both
// participants hold a live connection.
type TypingSignal struct {
	Sender   Participant
	Receiver Participant
	IsTyping bool
}
