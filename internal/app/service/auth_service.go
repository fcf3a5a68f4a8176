package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"contesthub/internal/common"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"
)

// TokenRevoker records logged-out token ids until they would have expired.
// A nil revoker means logout is a client-side cookie clear only.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type AuthService struct {
	userRepo repository.UserRepository
	hasher   *security.Hasher
	codec    *security.TokenCodec
	revoker  TokenRevoker
}

func NewAuthService(userRepo repository.UserRepository, hasher *security.Hasher, codec *security.TokenCodec, revoker TokenRevoker) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher, codec: codec, revoker: revoker}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	User   *model.User
	Token  string
	Claims security.SessionClaims
}

// Login verifies credentials and mints a session token. Unknown email,
// wrong password and insufficient tier all surface the same unauthorized
// error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, requireSuper bool) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	match, err := s.hasher.Verify(req.Password, user.HashedPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, common.ErrUnauthorized
	}

	if requireSuper {
		if !user.IsSuper {
			return nil, common.ErrUnauthorized
		}
	} else if !user.IsAdmin && !user.IsSuper {
		return nil, common.ErrUnauthorized
	}

	token, claims, err := s.codec.Generate(security.SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		IsSuper:  user.IsSuper,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.HashedPassword = "" // Clear password before returning
	return &LoginResult{User: user, Token: token, Claims: claims}, nil
}

// Logout never fails from the client's point of view. When a revoker is
// configured and the presented token is still valid, its id is deny-listed
// for the remainder of its lifetime; anything else is ignored.
func (s *AuthService) Logout(ctx context.Context, tokenString string) {
	if s.revoker == nil || tokenString == "" {
		return
	}
	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return // expired or garbage, nothing to revoke
	}
	if err := s.revoker.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		// Best effort: the token still dies at its expiry instant.
		log.Printf("failed to deny-list token: %v", err)
	}
}
