package memory

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	v := *user
	return r.s.exec(nil, op{
		check: func(s *Store) error { return s.usernameFree(v.Username, v.ID) },
		apply: func(s *Store) { s.users[v.ID] = v },
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	v := *user
	return r.s.exec(nil, op{
		check: func(s *Store) error {
			if _, ok := s.users[v.ID]; !ok {
				return domain.NewNotFound("usuario", v.ID)
			}
			return s.usernameFree(v.Username, v.ID)
		},
		apply: func(s *Store) { s.users[v.ID] = v },
	})
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	r.s.mu.RUnlock()
	sortByID(out, func(u *entity.User) string { return u.ID })
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.s.exec(nil, op{
		check: func(s *Store) error {
			_, ok := s.users[id]
			return notFoundUnless(ok, "usuario", id)
		},
		apply: func(s *Store) { delete(s.users, id) },
	})
}

func (s *Store) usernameFree(username, selfID string) error {
	for _, u := range s.users {
		if u.Username == username && u.ID != selfID {
			return domain.NewDuplicate("usuario", "username", username)
		}
	}
	return nil
}
