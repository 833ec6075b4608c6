package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"socialfeed-backend/internal/domains/account"
	"socialfeed-backend/pkg/cache"
)

// cachedAccount giữ cả password hash, Account.PasswordHash bị ẩn khỏi JSON
type cachedAccount struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`
	PasswordHash   string    `json:"password_hash"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toCached(a *account.Account) cachedAccount {
	return cachedAccount{
		ID:             a.ID,
		Username:       a.Username,
		Email:          a.Email,
		Bio:            a.Bio,
		ProfilePicture: a.ProfilePicture,
		PasswordHash:   a.PasswordHash,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (c cachedAccount) toAccount() *account.Account {
	return &account.Account{
		ID:             c.ID,
		Username:       c.Username,
		Email:          c.Email,
		Bio:            c.Bio,
		ProfilePicture: c.ProfilePicture,
		PasswordHash:   c.PasswordHash,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// cachedRepository là cache-aside decorator cho FindByID.
// Auth middleware gọi FindByID ở mọi request nên đây là hot path.
// Lỗi cache chỉ được log, request vẫn đi xuống repository bên dưới.
type cachedRepository struct {
	next  account.Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(next account.Repository, c cache.Cache, ttl time.Duration) account.Repository {
	return &cachedRepository{next: next, cache: c, ttl: ttl}
}

func cacheKey(id uuid.UUID) string {
	return cache.Key("account", id.String())
}

func (r *cachedRepository) Create(ctx context.Context, a *account.Account) error {
	return r.next.Create(ctx, a)
}

func (r *cachedRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	key := cacheKey(id)

	var hit cachedAccount
	found, err := r.cache.Get(ctx, key, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] Get failed")
	}
	if err == nil && found {
		return hit.toAccount(), nil
	}

	a, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, toCached(a), r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] Set failed")
	}
	return a, nil
}

func (r *cachedRepository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	return r.next.FindByUsername(ctx, username)
}

func (r *cachedRepository) List(ctx context.Context, limit, offset int) ([]account.Account, int, error) {
	return r.next.List(ctx, limit, offset)
}

func (r *cachedRepository) Update(ctx context.Context, a *account.Account) error {
	if err := r.next.Update(ctx, a); err != nil {
		return err
	}
	r.invalidate(ctx, a.ID)
	return nil
}

func (r *cachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *cachedRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Str("account_id", id.String()).Msg("[CACHE] Invalidate failed")
	}
}
