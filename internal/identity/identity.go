// Package identity validates session tokens issued by the platform's auth
// service and binds the asserted participant to requests and live
// connections. The chat core never derives roles client-side: the kind
// claim inside the signed token is the only accepted source.
package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

var ErrInvalidToken = errors.New("identity: invalid token")

// Claims is the payload the auth service signs into session tokens.
type Claims struct {
	AccountID int64  `json:"account_id"`
	Kind      string `json:"kind"`
	Name      string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 session tokens with a shared secret.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Sign creates a token for the participant. The auth service is the normal
// issuer; this is used by tooling and tests.
func (a *Authenticator) Sign(p chat.Participant, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: p.ID,
		Kind:      string(p.Kind),
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "legal-city",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify parses and validates a token and returns the asserted participant
// plus its display name.
func (a *Authenticator) Verify(tokenString string) (chat.Participant, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return chat.Participant{}, "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return chat.Participant{}, "", ErrInvalidToken
	}

	kind, err := chat.ParseParticipantKind(claims.Kind)
	if err != nil {
		return chat.Participant{}, "", err
	}
	p := chat.Participant{ID: claims.AccountID, Kind: kind}
	if !p.Valid() {
		return chat.Participant{}, "", ErrInvalidToken
	}
	return p, claims.Name, nil
}
