package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Claims carries the tenant partition key and actor metadata inside the
// signed token. Subject holds the actor id.
type Claims struct {
	TenantID int64            `json:"tenant_id"`
	Kind     shared.ActorKind `json:"kind"`
	Role     string           `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given identity.
func (m *TokenManager) Issue(id shared.Identity) (string, error) {
	now := m.now()
	claims := Claims{
		TenantID: id.TenantID,
		Kind:     id.Kind,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.ActorID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, returning the embedded identity.
func (m *TokenManager) Verify(tokenString string) (*shared.Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, shared.ErrUnauthorized
	}

	actorID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	return &shared.Identity{
		TenantID: claims.TenantID,
		ActorID:  actorID,
		Kind:     claims.Kind,
		Role:     claims.Role,
	}, nil
}
