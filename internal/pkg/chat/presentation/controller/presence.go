package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	cacheport "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/cache/port"
	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/realtime"
	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

const presenceKeyPrefix = "presence:"

// PresenceBroadcaster fans out online/offline transitions to every
// registered session and mirrors the status into the shared cache so other
// instances (and the REST presence endpoint) can read it. Fan-out is
// best-effort: presence is UI state, never a correctness input.
type PresenceBroadcaster struct {
	registry *realtime.Registry
	cache    cacheport.Cache // optional; nil disables the mirror
	log      *slog.Logger
}

func NewPresenceBroadcaster(registry *realtime.Registry, cache cacheport.Cache, log *slog.Logger) *PresenceBroadcaster {
	return &PresenceBroadcaster{registry: registry, cache: cache, log: log}
}

// Announce pushes a user_status frame to every session except the
// participant's own and updates the cache mirror.
func (b *PresenceBroadcaster) Announce(ctx context.Context, p chat.Participant, online bool) {
	status := "offline"
	if online {
		status = "online"
	}

	b.mirror(ctx, p, online)

	frame := statusFrame{
		Type:     "user_status",
		UserID:   p.ID,
		UserType: string(p.Kind),
		Status:   status,
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	for _, s := range b.registry.Snapshot() {
		if s.Participant == p {
			continue
		}
		_ = s.Conn.Send(payload)
	}
}

func (b *PresenceBroadcaster) mirror(ctx context.Context, p chat.Participant, online bool) {
	if b.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	key := presenceKeyPrefix + p.Key()
	var err error
	if online {
		err = b.cache.Set(ctx, key, "online", 0)
	} else {
		_, err = b.cache.Del(ctx, key)
	}
	if err != nil && b.log != nil {
		b.log.Warn("presence mirror update failed", "participant", p.Key(), "err", err)
	}
}
