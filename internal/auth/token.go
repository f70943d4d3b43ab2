package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTokenTTL is the lifetime of tokens issued by the login endpoint.
	DefaultTokenTTL = 20 * time.Minute

	// TokenType is reported to clients alongside the access token.
	TokenType = "bearer"
)

// ErrUnauthorized is returned for every token that cannot be trusted:
// bad signature, wrong algorithm, malformed payload, missing subject
// fields or an expiry in the past.
var ErrUnauthorized = errors.New("could not validate credentials")

// Identity is the caller identity carried by a verified token.
type Identity struct {
	Username string `json:"username"`
	ID       int    `json:"id"`
	Role     string `json:"role"`
}

// Claims is the signed payload: sub, id, role and exp.
type Claims struct {
	UserID int    `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens with a static secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService constructs a TokenService. A non-positive ttl falls back
// to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the default lifetime used by IssueDefault.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// IssueDefault issues a token with the service's configured lifetime.
func (s *TokenService) IssueDefault(username string, userID int, role string) (string, error) {
	return s.Issue(username, userID, role, s.ttl)
}

// Issue signs a token for the given subject that expires ttl from now.
func (s *TokenService) Issue(username string, userID int, role string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token signature and expiry and returns the identity it
// carries. All failures wrap ErrUnauthorized.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !token.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	if strings.TrimSpace(claims.Subject) == "" || claims.UserID < 1 {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrUnauthorized)
	}
	return Identity{
		Username: claims.Subject,
		ID:       claims.UserID,
		Role:     claims.Role,
	}, nil
}
