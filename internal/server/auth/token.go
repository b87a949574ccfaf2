// Package auth holds the authentication primitives of the server: the JWT
// codec that mints and checks bearer tokens, password hashing, and the
// request-scoped identity derived from an account.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token: the registered claims (sub, iat,
// exp) plus the account role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec mints and verifies HS256 tokens with a single shared secret.
// It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) { c.now = now }
}

// NewTokenCodec builds a codec signing with secret; minted tokens live for ttl.
func NewTokenCodec(secret []byte, ttl time.Duration, opts ...CodecOption) *TokenCodec {
	c := &TokenCodec{secret: secret, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// TTL returns the lifetime of minted tokens.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Mint signs a token for subject carrying role.
func (c *TokenCodec) Mint(subject, role string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty token subject", common.ErrorValidation)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify checks structure, expiry and signature and returns the claims.
//
// Expiry is decided first, on the unverified payload: any token past its
// exp is ErrTokenExpired whether or not its signature holds. Everything
// else that fails is ErrTokenInvalid. Claims are never returned together
// with an error.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	unverified := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, unverified); err != nil {
		return nil, common.ErrTokenInvalid
	}
	if exp := unverified.ExpiresAt; exp != nil && !c.now().Before(exp.Time) {
		return nil, common.ErrTokenExpired
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, c.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}

// ExtractSubject returns the subject of an authentic token without looking
// at its time claims, so expired tokens still yield their subject.
func (c *TokenCodec) ExtractSubject(token string) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, c.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || claims.Subject == "" {
		return "", common.ErrTokenInvalid
	}

	return claims.Subject, nil
}

func (c *TokenCodec) key(*jwt.Token) (any, error) {
	return c.secret, nil
}
