package controller

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cacheport "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/cache/port"
	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/realtime"
	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

var (
	userA   = chat.Participant{ID: 10, Kind: chat.KindUser}
	lawyerB = chat.Participant{ID: 20, Kind: chat.KindLawyer}
)

type fakeConn struct {
	mu   sync.Mutex
	sent [][]byte
}

func (f *fakeConn) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeConn) Close(code int, reason string) {}

func (f *fakeConn) frames(t *testing.T) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.sent))
	for _, p := range f.sent {
		var m map[string]any
		require.NoError(t, json.Unmarshal(p, &m))
		out = append(out, m)
	}
	return out
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }
func (c *fakeCache) Close() error                   { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPresenceBroadcaster_AnnounceSkipsSelf(t *testing.T) {
	req := require.New(t)
	registry := realtime.NewRegistry()
	connA := &fakeConn{}
	connB := &fakeConn{}
	registry.Register(realtime.NewSession(userA, connA))
	registry.Register(realtime.NewSession(lawyerB, connB))

	b := NewPresenceBroadcaster(registry, nil, discardLogger())
	b.Announce(context.Background(), userA, true)

	req.Empty(connA.frames(t))

	frames := connB.frames(t)
	req.Len(frames, 1)
	req.Equal("user_status", frames[0]["type"])
	req.EqualValues(10, frames[0]["user_id"])
	req.Equal("user", frames[0]["user_type"])
	req.Equal("online", frames[0]["status"])
}

func TestPresenceBroadcaster_CacheMirror(t *testing.T) {
	req := require.New(t)
	registry := realtime.NewRegistry()
	cache := newFakeCache()
	b := NewPresenceBroadcaster(registry, cache, discardLogger())

	b.Announce(context.Background(), userA, true)
	v, err := cache.Get(context.Background(), "presence:user:10")
	req.NoError(err)
	req.Equal("online", v)

	b.Announce(context.Background(), userA, false)
	_, err = cache.Get(context.Background(), "presence:user:10")
	req.ErrorIs(err, cacheport.ErrMiss)
}

func TestRealtimeDelivery_Message(t *testing.T) {
	req := require.New(t)
	registry := realtime.NewRegistry()
	connB := &fakeConn{}
	registry.Register(realtime.NewSession(lawyerB, connB))

	d := NewRealtimeDelivery(registry)
	msg := chat.Message{ID: 7, Sender: userA, Receiver: lawyerB, Content: "Hello", CreatedAt: time.Now()}

	req.True(d.DeliverMessage(lawyerB, msg))

	frames := connB.frames(t)
	req.Len(frames, 1)
	req.Equal("receive_message", frames[0]["type"])
	payload := frames[0]["message"].(map[string]any)
	req.EqualValues(7, payload["id"])
	req.Equal("Hello", payload["content"])
	req.EqualValues(10, payload["sender_id"])
	req.Equal("user", payload["sender_type"])
}

func TestRealtimeDelivery_OfflineReceiver(t *testing.T) {
	d := NewRealtimeDelivery(realtime.NewRegistry())
	msg := chat.Message{ID: 7, Sender: userA, Receiver: lawyerB, Content: "Hello"}
	require.False(t, d.DeliverMessage(lawyerB, msg))
	require.False(t, d.DeliverTyping(lawyerB, chat.TypingSignal{Sender: userA, Receiver: lawyerB, IsTyping: true}))
}

func TestRealtimeDelivery_Typing(t *testing.T) {
	req := require.New(t)
	registry := realtime.NewRegistry()
	connB := &fakeConn{}
	registry.Register(realtime.NewSession(lawyerB, connB))

	d := NewRealtimeDelivery(registry)
	req.True(d.DeliverTyping(lawyerB, chat.TypingSignal{Sender: userA, Receiver: lawyerB, IsTyping: true}))

	frames := connB.frames(t)
	req.Len(frames, 1)
	req.Equal("user_typing", frames[0]["type"])
	req.EqualValues(10, frames[0]["sender_id"])
	req.Equal(true, frames[0]["is_typing"])
}
