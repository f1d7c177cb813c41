package task

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/queue/port"
	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/adapter"
)

// SendMessageTaskType is the queue task name for the REST send path.
const SendMessageTaskType = "chat:send_message"

// SendMessagePayload is the JSON payload transported via the queue. Kept
// decoupled from domain types to avoid coupling wire tags to the domain.
type SendMessagePayload struct {
	SenderID     int64  `json:"senderId"`
	SenderKind   string `json:"senderKind"`
	ReceiverID   int64  `json:"receiverId"`
	ReceiverKind string `json:"receiverKind"`
	Content      string `json:"content"`
}

// RegisterSendMessageTask binds the handler to the worker server. The worker
// process holds no live sockets, so the use case runs with a nil delivery
// port: the message is persisted and the receiver picks it up via history.
func RegisterSendMessageTask(srv qport.Server, pool *pgxpool.Pool, log *slog.Logger) {
	srv.Register(SendMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p SendMessagePayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// Malformed payload will never succeed; drop without retry.
			log.Error("malformed send task payload", "err", err)
			return nil
		}

		senderKind, err := chat.ParseParticipantKind(p.SenderKind)
		if err != nil {
			log.Error("send task with bad sender kind", "kind", p.SenderKind)
			return nil
		}
		receiverKind, err := chat.ParseParticipantKind(p.ReceiverKind)
		if err != nil {
			log.Error("send task with bad receiver kind", "kind", p.ReceiverKind)
			return nil
		}

		repo := repoAdapter.NewPgMessageRepository(pool)
		uc := usecase.NewSendMessageUseCase(repo, nil)

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err = uc.Execute(ctx, usecase.SendMessageInput{
			Sender:   chat.Participant{ID: p.SenderID, Kind: senderKind},
			Receiver: chat.Participant{ID: p.ReceiverID, Kind: receiverKind},
			Content:  p.Content,
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, usecase.ErrPersistence):
			// Store trouble is transient; let the queue retry.
			return err
		default:
			// Domain validation failures are permanent; drop without retry.
			log.Warn("send task rejected", "err", err)
			return nil
		}
	})
}
