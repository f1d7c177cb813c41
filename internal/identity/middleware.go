package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

const participantKey = "identity.participant"

// Middleware authenticates requests via "Authorization: Bearer <token>" and
// stores the asserted participant on the gin context.
func Middleware(auth *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		p, _, err := auth.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(participantKey, p)
		c.Next()
	}
}

// FromContext returns the participant bound by Middleware.
func FromContext(c *gin.Context) (chat.Participant, bool) {
	v, ok := c.Get(participantKey)
	if !ok {
		return chat.Participant{}, false
	}
	p, ok := v.(chat.Participant)
	return p, ok
}
