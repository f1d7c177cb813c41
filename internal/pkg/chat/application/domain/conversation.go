package chat

import "time"

// ConversationSummary is one row of a participant's conversation list.
// Conversations are derived from the message log per distinct partner;
// nothing is stored for them directly.
type ConversationSummary struct {
	Partner       Participant `db:"partner"`
	PartnerName   string      `db:"partner_name"`
	LastMessage   string      `db:"last_message"`
	LastMessageAt time.Time   `db:"last_message_at"`
	UnreadCount   int         `db:"unread_count"`
}
