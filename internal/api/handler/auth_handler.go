package handler

import (
	"encoding/json"
	"net/http"

	"contesthub/internal/api/middleware"
	"contesthub/internal/app/service"
	"contesthub/internal/common"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService   *service.AuthService
	secureCookies bool
}

func NewAuthHandler(authService *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// RegisterPublicRoutes wires the endpoints that must work without a valid
// session. Logout is deliberately public: clearing a dead cookie should
// never fail.
func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/super/login", h.superLogin)
	r.Post("/logout", h.logout)
}

// RegisterProtectedRoutes wires the endpoints behind the guard.
func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

type loginResponse struct {
	User *model.User `json:"user"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r, false)
}

func (h *AuthHandler) superLogin(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r, true)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request, requireSuper bool) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.authService.Login(r.Context(), req, requireSuper)
	if err != nil {
		code := common.HTTPStatusFromError(err)
		if code == http.StatusUnauthorized {
			// One message for unknown email, bad password and wrong tier.
			common.RespondWithError(w, code, "Invalid credentials")
			return
		}
		common.RespondWithDomainError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	common.RespondWithJSON(w, http.StatusOK, loginResponse{User: result.User})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(r.Context(), middleware.TokenFromCookie(r))
	h.clearSessionCookie(w)
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"id":       claims.UserID,
		"userName": claims.Username,
		"email":    claims.Email,
		"isAdmin":  claims.IsAdmin,
		"isSuper":  claims.IsSuper,
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(security.TokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}
