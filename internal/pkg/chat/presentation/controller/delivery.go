package controller

import (
	"encoding/json"

	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/realtime"
	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/port"
)

// RealtimeDelivery implements the application delivery port on top of the
// connection registry. A missing or unreachable receiver session is reported
// as not delivered, never as an error; for messages the persisted row is the
// queue, for typing signals the drop is final.
type RealtimeDelivery struct {
	registry *realtime.Registry
}

func NewRealtimeDelivery(registry *realtime.Registry) *RealtimeDelivery {
	return &RealtimeDelivery{registry: registry}
}

// Ensure interface compliance at compile time
var _ port.Delivery = (*RealtimeDelivery)(nil)

func (d *RealtimeDelivery) DeliverMessage(receiver chat.Participant, m chat.Message) bool {
	session, ok := d.registry.Lookup(receiver)
	if !ok {
		return false
	}
	frame := messageFrame{Type: "receive_message", Message: toPayload(m)}
	payload, err := json.Marshal(frame)
	if err != nil {
		return false
	}
	return session.Conn.Send(payload) == nil
}

func (d *RealtimeDelivery) DeliverTyping(receiver chat.Participant, sig chat.TypingSignal) bool {
	session, ok := d.registry.Lookup(receiver)
	if !ok {
		return false
	}
	frame := typingFrame{
		Type:       "user_typing",
		SenderID:   sig.Sender.ID,
		SenderType: string(sig.Sender.Kind),
		IsTyping:   sig.IsTyping,
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return false
	}
	return session.Conn.Send(payload) == nil
}
