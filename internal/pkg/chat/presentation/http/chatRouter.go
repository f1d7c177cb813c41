package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/shahfahad-developer/legal-city-sub000/internal/identity"
	cacheport "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/cache/port"
	qport "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/queue/port"
	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/realtime"
	repository "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/port"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/presentation/controller"
)

// Deps carries everything the chat endpoints need. The repository comes in
// as its port so tests can mount the routes over an in-memory store.
type Deps struct {
	Repo            repository.MessageRepository
	Queue           qport.Client
	Cache           cacheport.Cache
	Registry        *realtime.Registry
	Auth            *identity.Authenticator
	Log             *slog.Logger
	HistoryPageSize int
}

// RegisterRoutes registers chat-related HTTP endpoints under the given
// router group. It constructs per-endpoint controllers and binds them
// directly to routes.
func RegisterRoutes(g *gin.RouterGroup, d Deps) {
	presence := controller.NewPresenceBroadcaster(d.Registry, d.Cache, d.Log)

	socketCtl := controller.NewChatSocketController(d.Repo, d.Registry, presence, d.Auth, d.Log)
	convCtl := controller.NewGetConversationsController(d.Repo)
	msgCtl := controller.NewGetMessagesController(d.Repo, d.HistoryPageSize)
	readCtl := controller.NewMarkReadController(d.Repo)
	sendCtl := controller.NewSendMessageController(d.Queue)
	presCtl := controller.NewPresenceController(d.Registry, d.Cache)

	authed := g.Group("/chat", identity.Middleware(d.Auth))

	// GET /api/v1/chat/conversations -> conversation summaries for the caller
	authed.GET("/conversations", convCtl.Handle())

	// GET /api/v1/chat/messages/:partnerId/:partnerType -> paginated history
	authed.GET("/messages/:partnerId/:partnerType", msgCtl.Handle())

	// PUT /api/v1/chat/messages/read/:partnerId/:partnerType -> mark conversation read
	authed.PUT("/messages/read/:partnerId/:partnerType", readCtl.Handle())

	// POST /api/v1/chat/messages -> enqueue a send for clients without a socket
	authed.POST("/messages", sendCtl.Handle())

	// GET /api/v1/chat/presence/:partnerId/:partnerType -> online/offline
	authed.GET("/presence/:partnerId/:partnerType", presCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint; authenticates via ?token=
	// because websocket dials cannot carry an Authorization header.
	g.GET("/chat/ws", socketCtl.Handle())
}
