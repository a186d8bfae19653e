package memstore

import (
	"context"
	"sort"

	userdomain "github.com/Apurer/gomitas-api/internal/domains/users/domain"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
)

type userRepo struct{ t *tx }

var _ userports.Repository = userRepo{}

func cloneUser(u *userdomain.User) *userdomain.User {
	c := *u
	return &c
}

func (r userRepo) all() []*userdomain.User {
	r.t.store.mu.RLock()
	merged := make(map[int64]*userdomain.User, len(r.t.store.users)+len(r.t.users))
	for id, u := range r.t.store.users {
		merged[id] = u
	}
	r.t.store.mu.RUnlock()
	for id, u := range r.t.users {
		merged[id] = u
	}
	out := make([]*userdomain.User, 0, len(merged))
	for _, u := range merged {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r userRepo) Create(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	if err := r.t.lock(ctx, lockKey("email", user.Email)); err != nil {
		return nil, err
	}
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return nil, userports.ErrEmailTaken
	}
	stored := cloneUser(user)
	stored.ID = r.t.store.userSeq.Add(1)
	now := r.t.store.stamp()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.t.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*userdomain.User, error) {
	if u, ok := r.t.users[id]; ok {
		return cloneUser(u), nil
	}
	r.t.store.mu.RLock()
	defer r.t.store.mu.RUnlock()
	u, ok := r.t.store.users[id]
	if !ok {
		return nil, userports.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*userdomain.User, error) {
	for _, u := range r.all() {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, userports.ErrNotFound
}

func (r userRepo) List(_ context.Context) ([]*userdomain.User, error) {
	all := r.all()
	out := make([]*userdomain.User, 0, len(all))
	for _, u := range all {
		out = append(out, cloneUser(u))
	}
	return out, nil
}
