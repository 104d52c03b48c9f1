package memstore

import (
	"context"
	"slices"

	"stafftrack/internal/model"
)

// UserStore exposes the user repository surface over the shared store.
type UserStore struct {
	store *Store
}

func (s *Store) Users() *UserStore {
	return &UserStore{store: s}
}

func (u *UserStore) Get(_ context.Context, id model.ID) (model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	user, ok := u.store.users[id]
	if !ok {
		return model.User{}, model.NewError("user", model.ErrNotFound)
	}
	return user, nil
}

func (u *UserStore) GetByUserID(_ context.Context, userID string) (model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	id, ok := u.store.userIDIdx[userID]
	if !ok {
		return model.User{}, model.NewError("user", model.ErrNotFound)
	}
	return u.store.users[id], nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	for _, id := range u.store.userOrder {
		user := u.store.users[id]
		if user.Email != nil && *user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.NewError("user", model.ErrNotFound)
}

func (u *UserStore) GetByPhone(_ context.Context, phone string) (model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	id, ok := u.store.phoneIndex[phone]
	if !ok {
		return model.User{}, model.NewError("user", model.ErrNotFound)
	}
	return u.store.users[id], nil
}

func (u *UserStore) FindEmployees(_ context.Context) ([]model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	var employees []model.User
	for _, id := range u.store.userOrder {
		user := u.store.users[id]
		if user.Role == model.RoleEmployee {
			employees = append(employees, user)
		}
	}

	slices.SortStableFunc(employees, func(a, b model.User) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return employees, nil
}

func (u *UserStore) FindByIDs(_ context.Context, ids []model.ID) ([]model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	var users []model.User
	seen := make(map[model.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if user, ok := u.store.users[id]; ok {
			users = append(users, user)
		}
	}

	return users, nil
}

func (u *UserStore) CountActiveEmployees(_ context.Context) (int, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	count := 0
	for _, user := range u.store.users {
		if user.Role == model.RoleEmployee && user.IsActive {
			count++
		}
	}
	return count, nil
}

func (u *UserStore) Insert(_ context.Context, user model.User) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if user.UserID != nil {
		if _, taken := u.store.userIDIdx[*user.UserID]; taken {
			return model.NewError("user", model.ErrExists)
		}
	}
	if user.Phone != nil {
		if _, taken := u.store.phoneIndex[*user.Phone]; taken {
			return model.NewError("user", model.ErrExists)
		}
	}

	u.store.users[user.ID] = user
	u.store.userOrder = append(u.store.userOrder, user.ID)
	if user.UserID != nil {
		u.store.userIDIdx[*user.UserID] = user.ID
	}
	if user.Phone != nil {
		u.store.phoneIndex[*user.Phone] = user.ID
	}

	return nil
}

func (u *UserStore) Update(_ context.Context, user model.User) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	current, ok := u.store.users[user.ID]
	if !ok {
		return model.NewError("user", model.ErrNotFound)
	}

	if user.Phone != nil {
		if other, taken := u.store.phoneIndex[*user.Phone]; taken && other != user.ID {
			return model.NewError("user", model.ErrExists)
		}
	}

	if current.Phone != nil {
		delete(u.store.phoneIndex, *current.Phone)
	}
	if user.Phone != nil {
		u.store.phoneIndex[*user.Phone] = user.ID
	}

	u.store.users[user.ID] = user

	return nil
}
