package usecase

import (
	"context"
	"fmt"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
)

// MarkReadInput identifies the conversation to mark read from the owner's
// point of view: every unread message sent by Partner to Owner.
type MarkReadInput struct {
	Owner   chat.Participant
	Partner chat.Participant
}

// MarkReadUseCase flips the read flag for one conversation. The flag only
// ever moves false -> true, so repeated calls are no-ops.
type MarkReadUseCase struct {
	Repo repository.MessageRepository
}

func NewMarkReadUseCase(repo repository.MessageRepository) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, in MarkReadInput) (int64, error) {
	if !in.Owner.Valid() || !in.Partner.Valid() {
		return 0, chat.ErrInvalidParticipant
	}
	updated, err := uc.Repo.MarkConversationRead(ctx, in.Owner, in.Partner)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return updated, nil
}
