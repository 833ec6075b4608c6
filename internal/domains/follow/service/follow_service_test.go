package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed-backend/internal/domains/follow"
	"socialfeed-backend/internal/infrastructure/events"
	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/pkg/testutil/memstore"
)

func newService(t *testing.T) (follow.Service, *memstore.Store, *events.Recorder) {
	t.Helper()
	store := memstore.New()
	rec := &events.Recorder{}
	return NewFollowService(store.Follows(), rec), store, rec
}

func followReq(id uuid.UUID) follow.CreateFollowRequest {
	return follow.CreateFollowRequest{User: id.String()}
}

func TestFollow(t *testing.T) {
	svc, store, rec := newService(t)
	ctx := context.Background()
	alice := store.SeedAccount("alice")
	bob := store.SeedAccount("bob")

	f, err := svc.Follow(ctx, bob.ID, followReq(alice.ID))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, f.UserID)
	assert.Equal(t, bob.ID, f.FollowerID)
	assert.False(t, f.CreatedAt.IsZero())

	got, err := svc.Get(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	assert.Equal(t, []events.Type{events.FollowCreated}, rec.Types())
}

func TestFollowRejections(t *testing.T) {
	svc, store, rec := newService(t)
	ctx := context.Background()
	alice := store.SeedAccount("alice")
	bob := store.SeedAccount("bob")

	_, err := svc.Follow(ctx, bob.ID, followReq(alice.ID))
	require.NoError(t, err)

	t.Run("duplicate", func(t *testing.T) {
		_, err := svc.Follow(ctx, bob.ID, followReq(alice.ID))
		assert.ErrorIs(t, err, follow.ErrAlreadyFollowing)
	})

	t.Run("self", func(t *testing.T) {
		_, err := svc.Follow(ctx, bob.ID, followReq(bob.ID))
		assert.ErrorIs(t, err, follow.ErrCannotFollowSelf)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := svc.Follow(ctx, bob.ID, followReq(uuid.New()))
		assert.ErrorIs(t, err, follow.ErrTargetNotFound)
	})

	t.Run("bad uuid", func(t *testing.T) {
		_, err := svc.Follow(ctx, bob.ID, follow.CreateFollowRequest{User: "not-a-uuid"})
		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs, "user")
	})

	_, _, follows := store.Counts()
	assert.Equal(t, 1, follows)
	assert.Len(t, rec.Events(), 1)
}

func TestUnfollow(t *testing.T) {
	svc, store, rec := newService(t)
	ctx := context.Background()
	alice := store.SeedAccount("alice")
	bob := store.SeedAccount("bob")

	_, err := svc.Follow(ctx, bob.ID, followReq(alice.ID))
	require.NoError(t, err)

	// alice không follow bob, chỉ bob follow alice
	assert.ErrorIs(t, svc.Unfollow(ctx, alice.ID, bob.ID), follow.ErrRelationshipNotFound)

	require.NoError(t, svc.Unfollow(ctx, bob.ID, alice.ID))
	assert.ErrorIs(t, svc.Unfollow(ctx, bob.ID, alice.ID), follow.ErrRelationshipNotFound)

	assert.Equal(t, []events.Type{events.FollowCreated, events.FollowDeleted}, rec.Types())
}

func TestListFollowsWithFilters(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	alice := store.SeedAccount("alice")
	bob := store.SeedAccount("bob")
	carol := store.SeedAccount("carol")

	for _, pair := range [][2]uuid.UUID{
		{bob.ID, alice.ID},
		{carol.ID, alice.ID},
		{alice.ID, bob.ID},
	} {
		_, err := svc.Follow(ctx, pair[0], followReq(pair[1]))
		require.NoError(t, err)
	}

	p := pagination.Params{Page: 1, PageSize: 10}

	pg, err := svc.List(ctx, follow.ListFilter{}, p)
	require.NoError(t, err)
	assert.Equal(t, 3, pg.Total)

	pg, err = svc.List(ctx, follow.ListFilter{UserID: &alice.ID}, p)
	require.NoError(t, err)
	assert.Equal(t, 2, pg.Total)
	for _, f := range pg.Items {
		assert.Equal(t, alice.ID, f.UserID)
	}

	pg, err = svc.List(ctx, follow.ListFilter{FollowerID: &alice.ID}, p)
	require.NoError(t, err)
	require.Equal(t, 1, pg.Total)
	assert.Equal(t, bob.ID, pg.Items[0].UserID)

	pg, err = svc.List(ctx, follow.ListFilter{UserID: &carol.ID}, p)
	require.NoError(t, err)
	assert.Empty(t, pg.Items)
}
