package service_test

import (
	"context"
	"testing"
	"time"

	"contesthub/internal/app/service"
	"contesthub/internal/common"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc     *service.AuthService
	repo    *fakeUserRepo
	codec   *security.TokenCodec
	revoker *fakeRevoker
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	repo := newFakeUserRepo()
	hasher := security.NewHasher(security.MinHashCost)
	codec, err := security.NewTokenCodec([]byte("auth-test-secret"), security.TokenLifetime)
	require.NoError(t, err)
	revoker := &fakeRevoker{}

	seed := func(id, email, password string, isAdmin, isSuper bool) {
		hashed, err := hasher.Hash(password)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), &model.User{
			ID: id, Username: id, Email: email, HashedPassword: hashed,
			IsAdmin: isAdmin, IsSuper: isSuper,
		}))
	}
	seed("admin-1", "admin@example.com", "admin-pass", true, false)
	seed("super-1", "super@example.com", "super-pass", true, true)
	seed("plain-1", "plain@example.com", "plain-pass", false, false)

	return &authFixture{
		svc:     service.NewAuthService(repo, hasher, codec, revoker),
		repo:    repo,
		codec:   codec,
		revoker: revoker,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	t.Run("valid admin credentials issue a verifiable token", func(t *testing.T) {
		result, err := fx.svc.Login(ctx, service.LoginRequest{
			Email: "admin@example.com", Password: "admin-pass",
		}, false)
		require.NoError(t, err)
		assert.Empty(t, result.User.HashedPassword)

		claims, err := fx.codec.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", claims.UserID)
		assert.True(t, claims.IsAdmin)
		assert.False(t, claims.IsSuper)
		assert.Equal(t, result.Claims.TokenID, claims.TokenID)
	})

	t.Run("wrong password is a generic unauthorized", func(t *testing.T) {
		_, err := fx.svc.Login(ctx, service.LoginRequest{
			Email: "admin@example.com", Password: "wrong-pass",
		}, false)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("unknown email is the same generic unauthorized", func(t *testing.T) {
		_, err := fx.svc.Login(ctx, service.LoginRequest{
			Email: "ghost@example.com", Password: "admin-pass",
		}, false)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("non-admin account cannot log in", func(t *testing.T) {
		_, err := fx.svc.Login(ctx, service.LoginRequest{
			Email: "plain@example.com", Password: "plain-pass",
		}, false)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("admin cannot pass the super tier", func(t *testing.T) {
		_, err := fx.svc.Login(ctx, service.LoginRequest{
			Email: "admin@example.com", Password: "admin-pass",
		}, true)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("super admin passes both tiers", func(t *testing.T) {
		_, err := fx.svc.Login(ctx, service.LoginRequest{
			Email: "super@example.com", Password: "super-pass",
		}, true)
		require.NoError(t, err)
		_, err = fx.svc.Login(ctx, service.LoginRequest{
			Email: "super@example.com", Password: "super-pass",
		}, false)
		require.NoError(t, err)
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		_, err := fx.svc.Login(ctx, service.LoginRequest{Email: "admin@example.com"}, false)
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	t.Run("valid token is deny-listed for its remaining lifetime", func(t *testing.T) {
		result, err := fx.svc.Login(ctx, service.LoginRequest{
			Email: "admin@example.com", Password: "admin-pass",
		}, false)
		require.NoError(t, err)

		fx.svc.Logout(ctx, result.Token)

		require.Len(t, fx.revoker.tokenIDs, 1)
		assert.Equal(t, result.Claims.TokenID, fx.revoker.tokenIDs[0])
		assert.Greater(t, fx.revoker.ttls[0], time.Duration(0))
		assert.LessOrEqual(t, fx.revoker.ttls[0], security.TokenLifetime)
	})

	t.Run("garbage token is ignored", func(t *testing.T) {
		before := len(fx.revoker.tokenIDs)
		fx.svc.Logout(ctx, "not-a-token")
		assert.Len(t, fx.revoker.tokenIDs, before)
	})

	t.Run("empty token is ignored", func(t *testing.T) {
		before := len(fx.revoker.tokenIDs)
		fx.svc.Logout(ctx, "")
		assert.Len(t, fx.revoker.tokenIDs, before)
	})
}
