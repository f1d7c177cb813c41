package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMessage_Valid(t *testing.T) {
	req := require.New(t)

	sender := Participant{ID: 10, Kind: KindUser}
	receiver := Participant{ID: 20, Kind: KindLawyer}

	m, err := NewMessage(sender, receiver, "  Hello  ")
	req.NoError(err)
	req.Equal(sender, m.Sender)
	req.Equal(receiver, m.Receiver)
	req.Equal("Hello", m.Content)
	req.False(m.Read)
	req.WithinDuration(time.Now().UTC(), m.CreatedAt, time.Second)
}

func TestNewMessage_RejectsSelf(t *testing.T) {
	p := Participant{ID: 10, Kind: KindUser}

	_, err := NewMessage(p, p, "hi")
	require.ErrorIs(t, err, ErrSelfMessage)
}

func TestNewMessage_RejectsSameIDDifferentKind(t *testing.T) {
	// IDs are not unique across kinds: user 10 and lawyer 10 are two
	// distinct participants and may message each other.
	a := Participant{ID: 10, Kind: KindUser}
	b := Participant{ID: 10, Kind: KindLawyer}

	m, err := NewMessage(a, b, "hi")
	require.NoError(t, err)
	require.Equal(t, b, m.Receiver)
}

func TestNewMessage_RejectsEmptyContent(t *testing.T) {
	sender := Participant{ID: 10, Kind: KindUser}
	receiver := Participant{ID: 20, Kind: KindLawyer}

	_, err := NewMessage(sender, receiver, "   ")
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestNewMessage_RejectsInvalidParticipant(t *testing.T) {
	sender := Participant{ID: 0, Kind: KindUser}
	receiver := Participant{ID: 20, Kind: KindLawyer}

	_, err := NewMessage(sender, receiver, "hi")
	require.ErrorIs(t, err, ErrInvalidParticipant)
}

func TestParseParticipantKind(t *testing.T) {
	req := require.New(t)

	k, err := ParseParticipantKind("user")
	req.NoError(err)
	req.Equal(KindUser, k)

	k, err = ParseParticipantKind("lawyer")
	req.NoError(err)
	req.Equal(KindLawyer, k)

	_, err = ParseParticipantKind("admin")
	req.ErrorIs(err, ErrInvalidParticipant)
}

func TestParticipantKey(t *testing.T) {
	req := require.New(t)
	req.Equal("user:10", Participant{ID: 10, Kind: KindUser}.Key())
	req.Equal("lawyer:10", Participant{ID: 10, Kind: KindLawyer}.Key())
	req.NotEqual(Participant{ID: 10, Kind: KindUser}.Key(), Participant{ID: 10, Kind: KindLawyer}.Key())
}
