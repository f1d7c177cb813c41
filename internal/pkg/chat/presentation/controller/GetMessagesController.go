package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shahfahad-developer/legal-city-sub000/internal/identity"
	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/usecase"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesController pages through one conversation's history
// (one controller per endpoint).
type GetMessagesController struct {
	UC           *usecase.GetHistoryUseCase
	DefaultLimit int
}

func NewGetMessagesController(repo repository.MessageRepository, defaultLimit int) *GetMessagesController {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &GetMessagesController{UC: usecase.NewGetHistoryUseCase(repo), DefaultLimit: defaultLimit}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := identity.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		partner, err := partnerFromPath(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		limit := h.DefaultLimit
		offset := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.GetHistoryInput{
			Owner:   owner,
			Partner: partner,
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]messagePayload, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, toPayload(m))
		}
		c.JSON(http.StatusOK, out)
	}
}

// partnerFromPath reads the :partnerId/:partnerType pair shared by the
// history, read and presence routes.
func partnerFromPath(c *gin.Context) (chat.Participant, error) {
	id, err := strconv.ParseInt(c.Param("partnerId"), 10, 64)
	if err != nil {
		return chat.Participant{}, chat.ErrInvalidParticipant
	}
	return participantFromWire(id, c.Param("partnerType"))
}
