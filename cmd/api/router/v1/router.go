package v1

import (
	"github.com/gin-gonic/gin"

	httpHandler "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, d httpHandler.Deps) {
	v1 := r.Group("/api/v1")
	httpHandler.RegisterRoutes(v1, d)
}
