package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shahfahad-developer/legal-city-sub000/internal/identity"
	queueport "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/queue/port"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/task"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/usecase"
)

// SendMessageController is the REST fallback for sending: it enqueues a
// background task instead of writing inline, for clients without a live
// socket (one controller per endpoint). The worker runs the same send use
// case as the websocket path.
type SendMessageController struct {
	Q queueport.Client
}

func NewSendMessageController(client queueport.Client) *SendMessageController {
	return &SendMessageController{Q: client}
}

// sendMessageRequest is the DTO for the HTTP request body. Optional sender
// fields exist only so older clients that still send them get checked
// against the session identity instead of silently trusted.
type sendMessageRequest struct {
	SenderID     *int64  `json:"sender_id"`
	SenderType   *string `json:"sender_type"`
	ReceiverID   int64   `json:"receiver_id" binding:"required"`
	ReceiverType string  `json:"receiver_type" binding:"required"`
	Content      string  `json:"content" binding:"required"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		sender, ok := identity.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Claimed sender must match the authenticated identity.
		if req.SenderID != nil && *req.SenderID != sender.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": usecase.ErrUnauthorizedSender.Error()})
			return
		}
		if req.SenderType != nil && *req.SenderType != string(sender.Kind) {
			c.JSON(http.StatusForbidden, gin.H{"error": usecase.ErrUnauthorizedSender.Error()})
			return
		}

		if _, err := participantFromWire(req.ReceiverID, req.ReceiverType); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receiver"})
			return
		}

		payload := task.SendMessagePayload{
			SenderID:     sender.ID,
			SenderKind:   string(sender.Kind),
			ReceiverID:   req.ReceiverID,
			ReceiverKind: req.ReceiverType,
			Content:      req.Content,
		}
		b, err := json.Marshal(payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		opts := queueport.EnqueueOption{Queue: "chat", MaxRetry: 20}
		id, err := h.Q.Enqueue(ctx, queueport.Task{Type: task.SendMessageTaskType, Payload: b}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue message"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "queued",
			"task_id": id,
		})
	}
}
