package twin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

var errWrongTokenType = errors.New("wrong token type")

type tokenClaims struct {
	jwt.RegisteredClaims
	Type string `json:"typ"`
}

// tokenIssuer signs and verifies HS256 access and refresh tokens. Revoked token IDs are kept
// for the lifetime of the server.
type tokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	revoked map[string]struct{}
}

func newTokenIssuer(secret []byte, accessTTL, refreshTTL time.Duration, now func() time.Time) *tokenIssuer {
	return &tokenIssuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
		revoked:    make(map[string]struct{}),
	}
}

func (ti *tokenIssuer) issue(userID, tokenType string) (string, error) {
	ttl := ti.accessTTL
	if tokenType == refreshTokenType {
		ttl = ti.refreshTTL
	}
	now := ti.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hairhealth-twin",
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Type: tokenType,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (ti *tokenIssuer) issuePair(userID string) (access, refresh string, err error) {
	if access, err = ti.issue(userID, accessTokenType); err != nil {
		return "", "", err
	}
	if refresh, err = ti.issue(userID, refreshTokenType); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// verify checks the signature, expiry, type and revocation status of a token, and returns
// its claims.
func (ti *tokenIssuer) verify(token, tokenType string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(ti.now))
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenType {
		return nil, errWrongTokenType
	}
	ti.mu.Lock()
	defer ti.mu.Unlock()
	if _, ok := ti.revoked[claims.ID]; ok {
		return nil, errors.New("token has been revoked")
	}
	return claims, nil
}

func (ti *tokenIssuer) revoke(tokenID string) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	ti.revoked[tokenID] = struct{}{}
}
