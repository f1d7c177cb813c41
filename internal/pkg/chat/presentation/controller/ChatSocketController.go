package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/shahfahad-developer/legal-city-sub000/internal/identity"
	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/realtime"
	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/usecase"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
)

const defaultReadTimeout = 60 * time.Second

// ChatSocketController owns the websocket endpoint: it authenticates the
// upgrade, binds the asserted participant to one live session, and processes
// inbound frames sequentially until disconnect. Frame processing order per
// connection is the read-loop order; there is no cross-frame concurrency.
type ChatSocketController struct {
	auth            *identity.Authenticator
	registry        *realtime.Registry
	presence        *PresenceBroadcaster
	sendUC          *usecase.SendMessageUseCase
	typingUC        *usecase.RelayTypingUseCase
	log             *slog.Logger
	inflightTimeout time.Duration
}

func NewChatSocketController(repo repository.MessageRepository, registry *realtime.Registry, presence *PresenceBroadcaster, auth *identity.Authenticator, log *slog.Logger) *ChatSocketController {
	delivery := NewRealtimeDelivery(registry)
	return &ChatSocketController{
		auth:            auth,
		registry:        registry,
		presence:        presence,
		sendUC:          usecase.NewSendMessageUseCase(repo, delivery),
		typingUC:        usecase.NewRelayTypingUseCase(delivery),
		log:             log,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cross-origin clients carry their own signed token.
		return true
	},
}

// Handle upgrades HTTP connections to websocket and processes frames until
// the client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Browsers cannot set headers on websocket dials, so the token
		// travels as a query parameter here.
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}
		participant, _, err := ctl.auth.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(ws)
		conn.Start()
		session := realtime.NewSession(participant, conn)

		if prev := ctl.registry.Register(session); prev != nil {
			prev.Conn.Close(4001, "session replaced")
		}
		ctl.presence.Announce(c.Request.Context(), participant, true)
		ctl.log.Info("session opened", "participant", participant.Key(), "session", session.ID)

		defer func() {
			// Unregister is stale-safe: if this session was superseded by a
			// newer login, the live entry stays and no offline is announced.
			if ctl.registry.Unregister(session) {
				ctl.presence.Announce(context.Background(), participant, false)
			}
			conn.Close(websocket.CloseNormalClosure, "session closed")
			ctl.log.Info("session closed", "participant", participant.Key(), "session", session.ID)
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					ctl.log.Debug("read loop ended", "participant", participant.Key(), "err", err)
				}
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(session, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "send_message":
				ctl.handleSendMessage(c, session, frame)
			case "typing":
				ctl.handleTyping(session, frame, true)
			case "stop_typing":
				ctl.handleTyping(session, frame, false)
			default:
				ctl.replyError(session, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) handleSendMessage(c *gin.Context, session *realtime.Session, frame inboundFrame) {
	receiver, err := participantFromWire(frame.ReceiverID, frame.ReceiverType)
	if err != nil {
		ctl.replyError(session, "bad_request", "invalid receiver")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	// Sender is the identity bound at upgrade; payload cannot spoof it.
	result, err := ctl.sendUC.Execute(ctx, usecase.SendMessageInput{
		Sender:   session.Participant,
		Receiver: receiver,
		Content:  frame.Content,
	})
	if err != nil {
		ctl.replyUseCaseError(session, err)
		return
	}

	// Ack always goes back to the sender, delivered or not, so the client
	// can reconcile its optimistic echo with the stored record.
	ack := messageFrame{Type: "message_sent", Message: toPayload(result.Message)}
	if payload, err := json.Marshal(ack); err == nil {
		_ = session.Conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleTyping(session *realtime.Session, frame inboundFrame, isTyping bool) {
	receiver, err := participantFromWire(frame.ReceiverID, frame.ReceiverType)
	if err != nil {
		// Typing is fire-and-forget; a malformed receiver is just dropped.
		return
	}
	ctl.typingUC.Execute(chat.TypingSignal{
		Sender:   session.Participant,
		Receiver: receiver,
		IsTyping: isTyping,
	})
}

func (ctl *ChatSocketController) replyUseCaseError(session *realtime.Session, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		ctl.log.Error("send failed", "participant", session.Participant.Key(), "err", err)
		ctl.replyError(session, "internal_error", "message could not be stored")
	case errors.Is(err, chat.ErrSelfMessage),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrInvalidParticipant):
		ctl.replyError(session, "bad_request", err.Error())
	default:
		ctl.replyError(session, "bad_request", err.Error())
	}
}

func (ctl *ChatSocketController) replyError(session *realtime.Session, code string, message string) {
	frame := errorFrame{Type: "message_error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = session.Conn.Send(payload)
	}
}
