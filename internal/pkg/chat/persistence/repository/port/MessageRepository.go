package repository

import (
	"context"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

// MessageRepository defines persistence operations for the chat message log.
// The store is the single source of truth for message ordering: callers rely
// on its assigned ids/timestamps and never mutate a message after creation
// (except the monotonic read flag).
type MessageRepository interface {
	// SaveMessage durably writes a new message with read=false and returns it
	// with the store-assigned id and created timestamp.
	SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error)

	// GetMessagesBetween returns the conversation between a and b ordered
	// oldest to newest, paginated by limit/offset.
	GetMessagesBetween(ctx context.Context, a, b chat.Participant, limit, offset int) ([]chat.Message, error)

	// ListConversations returns one summary per distinct partner of p,
	// ordered by last message timestamp descending.
	ListConversations(ctx context.Context, p chat.Participant) ([]chat.ConversationSummary, error)

	// MarkConversationRead flips read=true on every unread message from
	// partner to owner and returns the number of rows updated. Idempotent:
	// a second call is a no-op.
	MarkConversationRead(ctx context.Context, owner, partner chat.Participant) (int64, error)
}
