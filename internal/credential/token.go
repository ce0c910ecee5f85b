// Package credential hashes passwords and issues and verifies signed
// bearer tokens. It holds no state besides the signing secret.
package credential

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is used when no token lifetime is configured.
const DefaultTTL = 8 * 24 * time.Hour

// ErrInvalidCredential is returned for every token that fails verification,
// whatever the reason.
var ErrInvalidCredential = errors.New("invalid credential")

var signingMethod = jwt.SigningMethodHS256

// Claims is the verified payload of a token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// SubjectID parses the subject as a user id.
func (c *Claims) SubjectID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidCredential
	}
	return uint(id), nil
}

// Engine signs and verifies tokens with a process-wide secret.
type Engine struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewEngine creates an Engine. A non-positive ttl falls back to DefaultTTL.
func NewEngine(secret string, ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Engine{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the default token lifetime.
func (e *Engine) TTL() time.Duration {
	return e.ttl
}

// IssueToken signs a token for subjectID with the default lifetime.
func (e *Engine) IssueToken(subjectID uint) (string, error) {
	return e.IssueTokenWithTTL(subjectID, e.ttl)
}

// IssueTokenWithTTL signs a token for subjectID that expires after ttl.
// A zero ttl yields a token that is already expired.
func (e *Engine) IssueTokenWithTTL(subjectID uint, ttl time.Duration) (string, error) {
	now := e.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(subjectID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token, err := jwt.NewWithClaims(signingMethod, claims).SignedString(e.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// VerifyToken checks the signature, algorithm and expiry of token and
// returns its claims. The expiry must lie strictly in the future.
func (e *Engine) VerifyToken(token string) (*Claims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return e.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(e.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredential
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidCredential
	}
	if !claims.ExpiresAt.After(e.now()) {
		return nil, ErrInvalidCredential
	}

	return &Claims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
