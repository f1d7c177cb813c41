package usecase

import (
	"context"
	"fmt"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsUseCase returns one summary per distinct chat partner of
// the owner, newest conversation first.
type ListConversationsUseCase struct {
	Repo repository.MessageRepository
}

func NewListConversationsUseCase(repo repository.MessageRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, owner chat.Participant) ([]chat.ConversationSummary, error) {
	if !owner.Valid() {
		return nil, chat.ErrInvalidParticipant
	}
	summaries, err := uc.Repo.ListConversations(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return summaries, nil
}
