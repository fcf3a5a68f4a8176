package service

import (
	"context"
	"fmt"

	"contesthub/internal/common"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"

	"github.com/google/uuid"
)

// AdminService manages operator accounts. Creation and deletion are
// super-admin operations; the route guards enforce that, the service
// enforces the record-level rules.
type AdminService struct {
	userRepo repository.UserRepository
	hasher   *security.Hasher
}

func NewAdminService(userRepo repository.UserRepository, hasher *security.Hasher) *AdminService {
	return &AdminService{userRepo: userRepo, hasher: hasher}
}

type CreateAdminRequest struct {
	Username string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsSuper  bool   `json:"isSuper"`
}

// CreateAdmin creates an admin account. A super admin is always an admin
// as well, so a super token passes admin-gated routes even if a stored
// document were hand-edited later.
func (s *AdminService) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*model.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, common.Errorf("userName, email and password are required: %w", common.ErrBadRequest)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		IsAdmin:        true,
		IsSuper:        req.IsSuper,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate email.
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = ""
	return user, nil
}

type UpdateUserRequest struct {
	Username *string `json:"userName,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UpdateUser lets an admin change their own username or password. Super
// admins may update any account.
func (s *AdminService) UpdateUser(ctx context.Context, caller security.SessionClaims, id string, req UpdateUserRequest) (*model.User, error) {
	if caller.UserID != id && !caller.IsSuper {
		return nil, common.ErrForbidden
	}
	if req.Username == nil && req.Password == nil {
		return nil, common.Errorf("nothing to update: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if *req.Username == "" {
			return nil, common.Errorf("userName must not be empty: %w", common.ErrBadRequest)
		}
		user.Username = *req.Username
	}
	if req.Password != nil {
		hashedPassword, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.HashedPassword = ""
	return user, nil
}

// DeleteAdmin hard-deletes an admin account. Super-admin records can never
// be deleted, regardless of who asks; demote first, then delete.
func (s *AdminService) DeleteAdmin(ctx context.Context, id string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsSuper {
		return common.Errorf("super admin accounts cannot be deleted: %w", common.ErrForbidden)
	}
	return s.userRepo.Delete(ctx, id)
}

// GetUser fetches a single account without its password hash.
func (s *AdminService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}
