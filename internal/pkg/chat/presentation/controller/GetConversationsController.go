package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shahfahad-developer/legal-city-sub000/internal/identity"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/usecase"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
)

// GetConversationsController lists the caller's conversation summaries
// (one controller per endpoint).
type GetConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewGetConversationsController(repo repository.MessageRepository) *GetConversationsController {
	return &GetConversationsController{UC: usecase.NewListConversationsUseCase(repo)}
}

func (h *GetConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := identity.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		summaries, err := h.UC.Execute(ctx, owner)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, gin.H{
				"partner_id":      s.Partner.ID,
				"partner_type":    s.Partner.Kind,
				"partner_name":    s.PartnerName,
				"last_message":    s.LastMessage,
				"last_message_at": s.LastMessageAt,
				"unread_count":    s.UnreadCount,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}
