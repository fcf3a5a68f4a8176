package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"contesthub/internal/common"
	"contesthub/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

// CookieName carries the session token. The cookie is httpOnly and
// SameSite=Lax; the token inside is the only credential.
const CookieName = "auth_token"

type contextKey string

const identityCtxKey contextKey = "authUser"

// Denylist answers whether a token id has been revoked by logout.
type Denylist interface {
	Contains(ctx context.Context, tokenID string) (bool, error)
}

// TokenFromCookie extracts the session token for the verifier middleware.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Authenticator turns the verified token placed in the request context by
// jwtauth.Verify into a typed identity, rejecting absent, expired,
// malformed and deny-listed tokens with 401. It never touches the store:
// the claims are trusted as signed until expiry.
func Authenticator(denylist Denylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claimsMap, err := jwtauth.FromContext(r.Context())

			if err != nil || token == nil {
				switch {
				case errors.Is(err, jwtauth.ErrExpired):
					common.RespondWithError(w, http.StatusUnauthorized, "Token expired")
				case errors.Is(err, jwtauth.ErrNoTokenFound), err == nil:
					common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
				default:
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}

			claims, err := security.ClaimsFromMap(claimsMap)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}

			if denylist != nil {
				revoked, err := denylist.Contains(r.Context(), claims.TokenID)
				if err != nil {
					// Deny-list is best effort; the token still expires on
					// its own.
					log.Printf("denylist check failed: %v", err)
				} else if revoked {
					common.RespondWithError(w, http.StatusUnauthorized, "Token revoked")
					return
				}
			}

			ctx := context.WithValue(r.Context(), identityCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin admits admins and super admins.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := IdentityFromContext(r.Context())
		if !ok || (!claims.IsAdmin && !claims.IsSuper) {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin admits super admins only.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := IdentityFromContext(r.Context())
		if !ok || !claims.IsSuper {
			common.RespondWithError(w, http.StatusForbidden, "Super admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the authenticated identity attached by
// Authenticator.
func IdentityFromContext(ctx context.Context) (security.SessionClaims, bool) {
	claims, ok := ctx.Value(identityCtxKey).(security.SessionClaims)
	return claims, ok
}
