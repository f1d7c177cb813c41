package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

func TestSignAndVerify(t *testing.T) {
	req := require.New(t)
	auth := NewAuthenticator("test-secret")

	p := chat.Participant{ID: 42, Kind: chat.KindLawyer}
	token, err := auth.Sign(p, "Grace Counsel", time.Minute)
	req.NoError(err)

	got, name, err := auth.Verify(token)
	req.NoError(err)
	req.Equal(p, got)
	req.Equal("Grace Counsel", name)
}

func TestVerify_WrongSecret(t *testing.T) {
	auth := NewAuthenticator("test-secret")
	other := NewAuthenticator("other-secret")

	token, err := auth.Sign(chat.Participant{ID: 1, Kind: chat.KindUser}, "", time.Minute)
	require.NoError(t, err)

	_, _, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	auth := NewAuthenticator("test-secret")

	token, err := auth.Sign(chat.Participant{ID: 1, Kind: chat.KindUser}, "", -time.Minute)
	require.NoError(t, err)

	_, _, err = auth.Verify(token)
	require.Error(t, err)
}

func TestVerify_BadKindClaim(t *testing.T) {
	// A token signed with the right key but a kind outside the enum must be
	// rejected; the role is server-asserted, never defaulted.
	secret := []byte("test-secret")
	claims := &Claims{
		AccountID: 7,
		Kind:      "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, _, err = NewAuthenticator("test-secret").Verify(token)
	require.ErrorIs(t, err, chat.ErrInvalidParticipant)
}

func TestVerify_Garbage(t *testing.T) {
	_, _, err := NewAuthenticator("test-secret").Verify("not-a-token")
	require.Error(t, err)
}
