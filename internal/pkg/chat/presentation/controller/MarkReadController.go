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

// MarkReadController marks a whole conversation read for the caller
// (one controller per endpoint).
type MarkReadController struct {
	UC *usecase.MarkReadUseCase
}

func NewMarkReadController(repo repository.MessageRepository) *MarkReadController {
	return &MarkReadController{UC: usecase.NewMarkReadUseCase(repo)}
}

func (h *MarkReadController) Handle() gin.HandlerFunc {
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

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if _, err := h.UC.Execute(ctx, usecase.MarkReadInput{Owner: owner, Partner: partner}); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
