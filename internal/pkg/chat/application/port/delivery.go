package port

import (
	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

// Delivery pushes events to a receiver's live connection, if one exists.
// Implementations are best-effort: a false return means the receiver had no
// usable connection, which is a normal outcome, not an error. Adapters must
// never block on a slow receiver.
type Delivery interface {
	// DeliverMessage forwards a stored message to the receiver's connection.
	DeliverMessage(receiver chat.Participant, m chat.Message) bool

	// DeliverTyping forwards a transient typing signal to the receiver's
	// connection.
	DeliverTyping(receiver chat.Participant, sig chat.TypingSignal) bool
}
