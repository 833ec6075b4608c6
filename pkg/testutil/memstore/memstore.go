// Package memstore is an in-memory backing store for tests. It honours the
// same uniqueness, foreign key, check and cascade rules as the SQL schema.
package memstore

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"socialfeed-backend/internal/domains/account"
	"socialfeed-backend/internal/domains/feed"
	"socialfeed-backend/internal/domains/follow"
	"socialfeed-backend/internal/domains/post"
)

// ErrInjected is returned by every operation while FailNext is set.
var ErrInjected = errors.New("memstore: injected failure")

type Store struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]account.Account
	posts    map[uuid.UUID]post.Post
	follows  map[uuid.UUID]follow.Follow
	now      func() time.Time

	// FailNext makes the next repository call return ErrInjected.
	FailNext bool
}

func New() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]account.Account),
		posts:    make(map[uuid.UUID]post.Post),
		follows:  make(map[uuid.UUID]follow.Follow),
		now:      time.Now,
	}
}

func (s *Store) Accounts() account.Repository { return accountRepo{s} }
func (s *Store) Posts() post.Repository        { return postRepo{s} }
func (s *Store) Follows() follow.Repository    { return followRepo{s} }
func (s *Store) Feed() feed.Repository         { return feedRepo{s} }

// Counts returns the number of stored accounts, posts and follows.
func (s *Store) Counts() (accounts, posts, follows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts), len(s.posts), len(s.follows)
}

// SeedAccount inserts an account directly.
func (s *Store) SeedAccount(username string) account.Account {
	a := account.Account{Username: username}
	if err := s.Accounts().Create(context.Background(), &a); err != nil {
		panic(err)
	}
	return a
}

func (s *Store) lock() error {
	s.mu.Lock()
	if s.FailNext {
		s.FailNext = false
		s.mu.Unlock()
		return ErrInjected
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}

func newerFirst(ti, tj time.Time, idi, idj uuid.UUID) bool {
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return bytes.Compare(idi[:], idj[:]) > 0
}

// ========================================
// ACCOUNTS
// ========================================

type accountRepo struct{ s *Store }

func (r accountRepo) usernameTaken(username string, except uuid.UUID) bool {
	for id, a := range r.s.accounts {
		if id != except && a.Username == username {
			return true
		}
	}
	return false
}

func (r accountRepo) Create(ctx context.Context, a *account.Account) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	if r.usernameTaken(a.Username, uuid.Nil) {
		return account.ErrUsernameTaken
	}
	a.ID = uuid.New()
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.accounts[a.ID] = *a
	return nil
}

func (r accountRepo) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return &a, nil
}

func (r accountRepo) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.Username == username {
			found := a
			return &found, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r accountRepo) List(ctx context.Context, limit, offset int) ([]account.Account, int, error) {
	if err := r.s.lock(); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()

	all := make([]account.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return bytes.Compare(all[i].ID[:], all[j].ID[:]) < 0
	})
	return page(all, limit, offset), len(all), nil
}

func (r accountRepo) Update(ctx context.Context, a *account.Account) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	existing, ok := r.s.accounts[a.ID]
	if !ok {
		return account.ErrAccountNotFound
	}
	if r.usernameTaken(a.Username, a.ID) {
		return account.ErrUsernameTaken
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = r.s.now()
	r.s.accounts[a.ID] = *a
	return nil
}

// Delete cascades to posts and follow edges in both directions.
func (r accountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return account.ErrAccountNotFound
	}
	delete(r.s.accounts, id)
	for pid, p := range r.s.posts {
		if p.UserID == id {
			delete(r.s.posts, pid)
		}
	}
	for fid, f := range r.s.follows {
		if f.UserID == id || f.FollowerID == id {
			delete(r.s.follows, fid)
		}
	}
	return nil
}

// ========================================
// POSTS
// ========================================

type postRepo struct{ s *Store }

func (r postRepo) Create(ctx context.Context, p *post.Post) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[p.UserID]; !ok {
		return post.ErrOwnerNotFound
	}
	p.ID = uuid.New()
	r.s.posts[p.ID] = *p
	return nil
}

func (r postRepo) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	return &p, nil
}

func sortPosts(posts []post.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return newerFirst(posts[i].Timestamp, posts[j].Timestamp, posts[i].ID, posts[j].ID)
	})
}

func (r postRepo) List(ctx context.Context, limit, offset int) ([]post.Post, int, error) {
	if err := r.s.lock(); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()

	all := make([]post.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		all = append(all, p)
	}
	sortPosts(all)
	return page(all, limit, offset), len(all), nil
}

func (r postRepo) UpdateLocked(ctx context.Context, id uuid.UUID, fn post.MutateFunc) (*post.Post, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	existing, ok := r.s.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}

	working := existing
	if err := fn(&working); err != nil {
		return nil, err
	}

	existing.Content = working.Content
	existing.Media = working.Media
	r.s.posts[id] = existing
	return &existing, nil
}

func (r postRepo) DeleteLocked(ctx context.Context, id uuid.UUID, check post.MutateFunc) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	existing, ok := r.s.posts[id]
	if !ok {
		return post.ErrPostNotFound
	}
	if err := check(&existing); err != nil {
		return err
	}
	delete(r.s.posts, id)
	return nil
}

// ========================================
// FOLLOWS
// ========================================

type followRepo struct{ s *Store }

func (r followRepo) Create(ctx context.Context, f *follow.Follow) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	if f.UserID == f.FollowerID {
		return follow.ErrCannotFollowSelf
	}
	if _, ok := r.s.accounts[f.UserID]; !ok {
		return follow.ErrTargetNotFound
	}
	if _, ok := r.s.accounts[f.FollowerID]; !ok {
		return follow.ErrTargetNotFound
	}
	for _, existing := range r.s.follows {
		if existing.UserID == f.UserID && existing.FollowerID == f.FollowerID {
			return follow.ErrAlreadyFollowing
		}
	}

	f.ID = uuid.New()
	f.CreatedAt = r.s.now()
	r.s.follows[f.ID] = *f
	return nil
}

func (r followRepo) FindByID(ctx context.Context, id uuid.UUID) (*follow.Follow, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	f, ok := r.s.follows[id]
	if !ok {
		return nil, follow.ErrFollowNotFound
	}
	return &f, nil
}

func (r followRepo) List(ctx context.Context, filter follow.ListFilter, limit, offset int) ([]follow.Follow, int, error) {
	if err := r.s.lock(); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()

	var all []follow.Follow
	for _, f := range r.s.follows {
		if filter.UserID != nil && f.UserID != *filter.UserID {
			continue
		}
		if filter.FollowerID != nil && f.FollowerID != *filter.FollowerID {
			continue
		}
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool {
		return newerFirst(all[i].CreatedAt, all[j].CreatedAt, all[i].ID, all[j].ID)
	})
	return page(all, limit, offset), len(all), nil
}

func (r followRepo) DeletePair(ctx context.Context, followedID, followerID uuid.UUID) (*follow.Follow, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	for id, f := range r.s.follows {
		if f.UserID == followedID && f.FollowerID == followerID {
			delete(r.s.follows, id)
			return &f, nil
		}
	}
	return nil, follow.ErrRelationshipNotFound
}

// ========================================
// FEED
// ========================================

type feedRepo struct{ s *Store }

func (r feedRepo) ListForFollower(ctx context.Context, followerID uuid.UUID, limit, offset int) ([]post.Post, int, error) {
	if err := r.s.lock(); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()

	followed := make(map[uuid.UUID]bool)
	for _, f := range r.s.follows {
		if f.FollowerID == followerID {
			followed[f.UserID] = true
		}
	}

	var all []post.Post
	for _, p := range r.s.posts {
		if followed[p.UserID] {
			all = append(all, p)
		}
	}
	sortPosts(all)
	return page(all, limit, offset), len(all), nil
}
