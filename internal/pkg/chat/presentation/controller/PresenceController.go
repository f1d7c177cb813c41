package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cacheport "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/cache/port"
	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/realtime"
)

// PresenceController answers "is this participant online" from the local
// registry first and the cache mirror second, so it works both single- and
// multi-instance. Presence is advisory only (one controller per endpoint).
type PresenceController struct {
	registry *realtime.Registry
	cache    cacheport.Cache
}

func NewPresenceController(registry *realtime.Registry, cache cacheport.Cache) *PresenceController {
	return &PresenceController{registry: registry, cache: cache}
}

func (h *PresenceController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		partner, err := partnerFromPath(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if _, ok := h.registry.Lookup(partner); ok {
			c.JSON(http.StatusOK, gin.H{"status": "online"})
			return
		}

		status := "offline"
		if h.cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if v, err := h.cache.Get(ctx, presenceKeyPrefix+partner.Key()); err == nil && v == "online" {
				status = "online"
			} else if err != nil && !errors.Is(err, cacheport.ErrMiss) {
				// Cache trouble degrades to offline; presence is best-effort.
				status = "offline"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": status})
	}
}
