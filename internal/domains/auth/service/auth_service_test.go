package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"socialfeed-backend/internal/domains/account"
	"socialfeed-backend/internal/domains/auth"
	"socialfeed-backend/pkg/jwt"
	"socialfeed-backend/pkg/testutil/memstore"
)

const testSecret = "test-secret"

func setup(t *testing.T) (auth.Service, *memstore.Store, *jwt.Manager, *account.Account) {
	t.Helper()
	store := memstore.New()
	manager := jwt.NewManager(testSecret, 5*time.Minute, 24*time.Hour)

	a := &account.Account{Username: "alice"}
	require.NoError(t, a.SetPassword("s3cret-pass", bcrypt.MinCost))
	require.NoError(t, store.Accounts().Create(context.Background(), a))

	return NewAuthService(store.Accounts(), manager), store, manager, a
}

func TestObtain(t *testing.T) {
	svc, _, manager, a := setup(t)

	pair, err := svc.Obtain(context.Background(), auth.ObtainRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, a.ID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	claims, err = manager.ValidateRefreshToken(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, a.ID.String(), claims.UserID)
}

func TestObtainInvalidCredentials(t *testing.T) {
	svc, store, _, _ := setup(t)
	store.SeedAccount("nopass")

	tests := []struct {
		name string
		req  auth.ObtainRequest
	}{
		{"wrong password", auth.ObtainRequest{Username: "alice", Password: "nope-nope"}},
		{"unknown user", auth.ObtainRequest{Username: "ghost", Password: "s3cret-pass"}},
		{"account without password", auth.ObtainRequest{Username: "nopass", Password: "anything"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Obtain(context.Background(), tt.req)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestRefresh(t *testing.T) {
	svc, store, manager, a := setup(t)
	ctx := context.Background()

	pair, err := svc.Obtain(ctx, auth.ObtainRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	out, err := svc.Refresh(ctx, auth.RefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	claims, err := manager.ValidateAccessToken(out.Access)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, auth.RefreshRequest{Refresh: pair.Access})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Refresh(ctx, auth.RefreshRequest{Refresh: "abc.def.ghi"})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("deleted account", func(t *testing.T) {
		require.NoError(t, store.Accounts().Delete(ctx, a.ID))
		_, err := svc.Refresh(ctx, auth.RefreshRequest{Refresh: pair.Refresh})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
