package controller

import (
	"time"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

// Wire frames for the websocket contract. Every frame carries a "type"
// discriminator; sender identity is never read from inbound frames.

type inboundFrame struct {
	Type         string `json:"type"`
	ReceiverID   int64  `json:"receiver_id,omitempty"`
	ReceiverType string `json:"receiver_type,omitempty"`
	Content      string `json:"content,omitempty"`
}

type ackFrame struct {
	Type string `json:"type"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// messageFrame carries a stored message: "receive_message" toward the
// receiver, "message_sent" as the ack toward the sender.
type messageFrame struct {
	Type    string         `json:"type"`
	Message messagePayload `json:"message"`
}

type statusFrame struct {
	Type     string `json:"type"`
	UserID   int64  `json:"user_id"`
	UserType string `json:"user_type"`
	Status   string `json:"status"`
}

type typingFrame struct {
	Type       string `json:"type"`
	SenderID   int64  `json:"sender_id"`
	SenderType string `json:"sender_type"`
	IsTyping   bool   `json:"is_typing"`
}

type messagePayload struct {
	ID           int64     `json:"id"`
	SenderID     int64     `json:"sender_id"`
	SenderType   string    `json:"sender_type"`
	ReceiverID   int64     `json:"receiver_id"`
	ReceiverType string    `json:"receiver_type"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	Read         bool      `json:"read"`
}

func toPayload(m chat.Message) messagePayload {
	return messagePayload{
		ID:           m.ID,
		SenderID:     m.Sender.ID,
		SenderType:   string(m.Sender.Kind),
		ReceiverID:   m.Receiver.ID,
		ReceiverType: string(m.Receiver.Kind),
		Content:      m.Content,
		CreatedAt:    m.CreatedAt,
		Read:         m.Read,
	}
}

func participantFromWire(id int64, kind string) (chat.Participant, error) {
	k, err := chat.ParseParticipantKind(kind)
	if err != nil {
		return chat.Participant{}, err
	}
	p := chat.Participant{ID: id, Kind: k}
	if !p.Valid() {
		return chat.Participant{}, chat.ErrInvalidParticipant
	}
	return p, nil
}
