package chat

import (
	"fmt"
	"strconv"
)

// ParticipantKind distinguishes the two account namespaces. IDs are not
// unique across kinds, so identity is always the (ID, Kind) pair.
type ParticipantKind string

const (
	KindUser   ParticipantKind = "user"
	KindLawyer ParticipantKind = "lawyer"
)

// ParseParticipantKind validates a wire-level kind string.
func ParseParticipantKind(s string) (ParticipantKind, error) {
	switch ParticipantKind(s) {
	case KindUser:
		return KindUser, nil
	case KindLawyer:
		return KindLawyer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidParticipant, s)
	}
}

// Participant identifies one side of a conversation. Immutable for the
// lifetime of a session; supplied by the auth layer, never by payloads.
type Participant struct {
	ID   int64           `db:"id"`
	Kind ParticipantKind `db:"kind"`
}

// Valid reports whether the pair is well formed.
func (p Participant) Valid() bool {
	return p.ID > 0 && (p.Kind == KindUser || p.Kind == KindLawyer)
}

// Key returns a stable string key for registry and cache lookups,
// e.g. "lawyer:20".
func (p Participant) Key() string {
	return string(p.Kind) + ":" + strconv.FormatInt(p.ID, 10)
}

func (p Participant) String() string { return p.Key() }
