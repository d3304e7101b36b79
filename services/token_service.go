package services

import (
	"crypto/rand"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fusionorder/fusion-order-api/models"
)

// minKeyBytes is the minimum HS256 key length (256 bits).
const minKeyBytes = 32

// TokenService issues and verifies the signed, time-limited tokens that
// carry a username and role between login and subsequent requests.
type TokenService struct {
	key []byte
	ttl time.Duration
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewTokenService builds a token service from the configured signing secret
// and token lifetime. A secret shorter than 32 bytes is replaced by a random
// per-process key; tokens issued before a restart then no longer verify, so
// a proper secret should always be configured outside of tests.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	key := []byte(secret)
	if len(key) < minKeyBytes {
		key = make([]byte, minKeyBytes)
		if _, err := rand.Read(key); err != nil {
			log.Fatalf("Failed to generate JWT signing key: %v", err)
		}
		log.Printf("JWT_SECRET is shorter than %d bytes, using a random per-process signing key", minKeyBytes)
	}
	return &TokenService{key: key, ttl: ttl}
}

// Issue creates a signed token for the given username and role.
func (s *TokenService) Issue(username string, role models.Role) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// parse verifies the signature and structure of a token and returns its
// claims. Expiry is deliberately not validated here; callers that care use
// IsExpired or Validate.
func (s *TokenService) parse(token string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, UnauthorizedError("invalid token")
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, UnauthorizedError("invalid token")
	}
	return claims, nil
}

// Username extracts the subject claim. Fails on a bad signature or a
// malformed token.
func (s *TokenService) Username(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Role extracts the role claim. Fails on a bad signature or a malformed
// token.
func (s *TokenService) Role(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

// IsExpired reports whether the token's expiry has passed. Tokens that do
// not verify at all count as expired.
func (s *TokenService) IsExpired(token string) bool {
	claims, err := s.parse(token)
	if err != nil || claims.ExpiresAt == nil {
		return true
	}
	return !time.Now().Before(claims.ExpiresAt.Time)
}

// Validate reports whether the token's embedded username matches the
// expected one and the token has not expired. Signature validity is implied:
// claim extraction fails closed on a bad signature.
func (s *TokenService) Validate(token, expectedUsername string) bool {
	claims, err := s.parse(token)
	if err != nil {
		return false
	}
	if claims.Subject != expectedUsername {
		return false
	}
	return claims.ExpiresAt != nil && time.Now().Before(claims.ExpiresAt.Time)
}
