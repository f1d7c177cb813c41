package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool
	code   int
}

func (f *fakeConn) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeConn) Close(code int, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.code = code
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

var (
	alice = chat.Participant{ID: 10, Kind: chat.KindUser}
	bob   = chat.Participant{ID: 20, Kind: chat.KindLawyer}
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	s := NewSession(alice, &fakeConn{})
	prev := r.Register(s)
	req.Nil(prev)

	got, ok := r.Lookup(alice)
	req.True(ok)
	req.Equal(s.ID, got.ID)

	_, ok = r.Lookup(bob)
	req.False(ok)
	req.Equal(1, r.Len())
}

func TestRegistry_SameIDDifferentKindAreDistinct(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	userTen := chat.Participant{ID: 10, Kind: chat.KindUser}
	lawyerTen := chat.Participant{ID: 10, Kind: chat.KindLawyer}

	s1 := NewSession(userTen, &fakeConn{})
	s2 := NewSession(lawyerTen, &fakeConn{})
	r.Register(s1)
	r.Register(s2)

	req.Equal(2, r.Len())
	got, ok := r.Lookup(userTen)
	req.True(ok)
	req.Equal(s1.ID, got.ID)
}

func TestRegistry_RegisterSupersedes(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	first := NewSession(alice, &fakeConn{})
	second := NewSession(alice, &fakeConn{})

	req.Nil(r.Register(first))
	prev := r.Register(second)
	req.NotNil(prev)
	req.Equal(first.ID, prev.ID)

	got, ok := r.Lookup(alice)
	req.True(ok)
	req.Equal(second.ID, got.ID)
	req.Equal(1, r.Len())
}

func TestRegistry_UnregisterIdempotent(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	s := NewSession(alice, &fakeConn{})
	r.Register(s)

	req.True(r.Unregister(s))
	_, ok := r.Lookup(alice)
	req.False(ok)

	// Removing again is a no-op, not an error.
	req.False(r.Unregister(s))
	req.False(r.Unregister(nil))
}

func TestRegistry_StaleUnregisterKeepsLiveSession(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	stale := NewSession(alice, &fakeConn{})
	live := NewSession(alice, &fakeConn{})
	r.Register(stale)
	r.Register(live)

	// The superseded socket's disconnect handler fires late; it must not
	// evict the live session.
	req.False(r.Unregister(stale))

	got, ok := r.Lookup(alice)
	req.True(ok)
	req.Equal(live.ID, got.ID)
}

func TestRegistry_Snapshot(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	r.Register(NewSession(alice, &fakeConn{}))
	r.Register(NewSession(bob, &fakeConn{}))

	snap := r.Snapshot()
	req.Len(snap, 2)

	keys := map[string]bool{}
	for _, s := range snap {
		keys[s.Participant.Key()] = true
	}
	req.True(keys["user:10"])
	req.True(keys["lawyer:20"])
}

func TestRegistry_CloseTerminatesAll(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	c1 := &fakeConn{}
	c2 := &fakeConn{}
	r.Register(NewSession(alice, c1))
	r.Register(NewSession(bob, c2))

	r.Close()

	req.Equal(0, r.Len())
	req.True(c1.isClosed())
	req.True(c2.isClosed())
}
