package usecase

import (
	"context"
	"fmt"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/port"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message. Sender is
// the identity bound to the caller's session, never taken from the payload.
type SendMessageInput struct {
	Sender   chat.Participant
	Receiver chat.Participant
	Content  string
}

// SendMessageResult is the acknowledgment returned to the sender: the stored
// message with its assigned id/timestamp, plus whether live delivery to the
// receiver happened. Delivered=false is the normal outcome for an offline
// receiver; the persisted row is the queue.
type SendMessageResult struct {
	Message   chat.Message
	Delivered bool
}

// SendMessageUseCase drives one send attempt through its states:
// validated, persisted, then delivered or left queued in the store.
// Persistence strictly precedes the delivery attempt, so an acknowledged
// message always exists durably even if the receiver's socket is gone.
//
// Hexagonal: depends on the repository and delivery ports only.
type SendMessageUseCase struct {
	Repo     repository.MessageRepository
	Delivery port.Delivery
}

// NewSendMessageUseCase constructs the use case. Delivery may be nil for
// callers with no live connections to hand (the queue worker); the message is
// then persisted only and the receiver picks it up via history on next fetch.
func NewSendMessageUseCase(repo repository.MessageRepository, delivery port.Delivery) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Delivery: delivery}
}

// Execute validates, persists and then attempts live delivery of a message.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*SendMessageResult, error) {
	msg, err := chat.NewMessage(in.Sender, in.Receiver, in.Content)
	if err != nil {
		return nil, err
	}

	stored, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	delivered := false
	if uc.Delivery != nil {
		delivered = uc.Delivery.DeliverMessage(stored.Receiver, stored)
	}

	return &SendMessageResult{Message: stored, Delivered: delivered}, nil
}
