package security

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime is the fixed validity window of a session token. There is
// no refresh flow; clients re-authenticate when the token expires.
const TokenLifetime = time.Hour

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenMalformed = errors.New("token is malformed")
)

// SessionClaims is the identity embedded in a session token. It is signed,
// not encrypted, and trusted as-is until expiry: a role revoked in the
// store keeps working for at most TokenLifetime.
type SessionClaims struct {
	UserID    string
	Username  string
	Email     string
	IsAdmin   bool
	IsSuper   bool
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec signs and verifies session tokens with a server-held secret.
type TokenCodec struct {
	auth     *jwtauth.JWTAuth
	lifetime time.Duration
}

// NewTokenCodec builds a codec over an HS256 keyset. The secret must be
// validated at startup; an empty secret is refused here as a last line of
// defense.
func NewTokenCodec(secret []byte, lifetime time.Duration) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret is not set")
	}
	if lifetime == 0 {
		lifetime = TokenLifetime
	}
	return &TokenCodec{
		auth:     jwtauth.New("HS256", secret, nil),
		lifetime: lifetime,
	}, nil
}

// Auth exposes the underlying keyset for the request-context verifier
// middleware.
func (c *TokenCodec) Auth() *jwtauth.JWTAuth {
	return c.auth
}

// Generate mints a signed token for the given identity, assigning a fresh
// token id and the issued/expiry instants. The returned claims mirror
// exactly what was embedded in the token.
func (c *TokenCodec) Generate(claims SessionClaims) (string, SessionClaims, error) {
	now := time.Now()
	claims.TokenID = uuid.NewString()
	claims.IssuedAt = now
	claims.ExpiresAt = now.Add(c.lifetime)

	_, tokenString, err := c.auth.Encode(jwt.MapClaims{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
		"is_admin": claims.IsAdmin,
		"is_super": claims.IsSuper,
		"jti":      claims.TokenID,
		"iat":      claims.IssuedAt.Unix(),
		"exp":      claims.ExpiresAt.Unix(),
	})
	if err != nil {
		return "", SessionClaims{}, err
	}
	return tokenString, claims, nil
}

// Verify checks signature and expiry and decodes the claims. Expired tokens
// and tokens that fail any other check are reported as distinct errors so
// the boundary can word the 401 accordingly.
func (c *TokenCodec) Verify(tokenString string) (SessionClaims, error) {
	token, err := jwtauth.VerifyToken(c.auth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrTokenMalformed
	}

	claimsMap, err := token.AsMap(context.Background())
	if err != nil {
		return SessionClaims{}, ErrTokenMalformed
	}
	return ClaimsFromMap(claimsMap)
}

// ClaimsFromMap rebuilds SessionClaims from a decoded claims map, as
// produced by Verify or by the verifier middleware.
func ClaimsFromMap(m map[string]interface{}) (SessionClaims, error) {
	claims := SessionClaims{}
	var ok bool

	if claims.UserID, ok = m["user_id"].(string); !ok || claims.UserID == "" {
		return SessionClaims{}, ErrTokenMalformed
	}
	if claims.Username, ok = m["username"].(string); !ok {
		return SessionClaims{}, ErrTokenMalformed
	}
	if claims.Email, ok = m["email"].(string); !ok {
		return SessionClaims{}, ErrTokenMalformed
	}
	if claims.IsAdmin, ok = m["is_admin"].(bool); !ok {
		return SessionClaims{}, ErrTokenMalformed
	}
	if claims.IsSuper, ok = m["is_super"].(bool); !ok {
		return SessionClaims{}, ErrTokenMalformed
	}
	if claims.TokenID, ok = m["jti"].(string); !ok {
		return SessionClaims{}, ErrTokenMalformed
	}
	if t, ok := timeClaim(m["iat"]); ok {
		claims.IssuedAt = t
	}
	if t, ok := timeClaim(m["exp"]); ok {
		claims.ExpiresAt = t
	}
	return claims, nil
}

// The JWT library yields registered time claims as time.Time when decoding
// a token and numbers were used at encode time, so accept both.
func timeClaim(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case float64:
		return time.Unix(int64(t), 0), true
	case int64:
		return time.Unix(t, 0), true
	}
	return time.Time{}, false
}
