package usecase

import (
	"context"
	"fmt"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
)

// GetHistoryInput carries parameters to fetch one conversation page.
type GetHistoryInput struct {
	Owner   chat.Participant
	Partner chat.Participant
	Limit   int
	Offset  int
}

// GetHistoryUseCase fetches the message history between two participants,
// oldest first, restartable via offset.
type GetHistoryUseCase struct {
	Repo repository.MessageRepository
}

func NewGetHistoryUseCase(repo repository.MessageRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{Repo: repo}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, in GetHistoryInput) ([]chat.Message, error) {
	if !in.Owner.Valid() || !in.Partner.Valid() {
		return nil, chat.ErrInvalidParticipant
	}
	msgs, err := uc.Repo.GetMessagesBetween(ctx, in.Owner, in.Partner, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
