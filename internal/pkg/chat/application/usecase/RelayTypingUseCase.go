package usecase

import (
	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/port"
)

// RelayTypingUseCase forwards typing signals peer to peer. Nothing is
// persisted and nothing is acknowledged: if the receiver has no live
// connection the signal is silently dropped. Receivers clear their typing
// indicator on a local timeout, so a lost stop signal is harmless.
type RelayTypingUseCase struct {
	Delivery port.Delivery
}

func NewRelayTypingUseCase(delivery port.Delivery) *RelayTypingUseCase {
	return &RelayTypingUseCase{Delivery: delivery}
}

// Execute relays the signal and reports whether the receiver was reachable.
func (uc *RelayTypingUseCase) Execute(sig chat.TypingSignal) bool {
	if !sig.Sender.Valid() || !sig.Receiver.Valid() || sig.Sender == sig.Receiver {
		return false
	}
	if uc.Delivery == nil {
		return false
	}
	return uc.Delivery.DeliverTyping(sig.Receiver, sig)
}
