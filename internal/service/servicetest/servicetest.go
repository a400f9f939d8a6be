// Package servicetest provides in-memory doubles shared by service tests.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
)

// Transactor runs fn directly. Mutex serializes callers the way row locks
// would, and Calls counts transactions opened.
type Transactor struct {
	mu    sync.Mutex
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Calls++
	return fn(ctx)
}

// Users is an in-memory user.UserRepository.
type Users struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]user.User
}

func NewUsers(seed ...user.User) *Users {
	u := &Users{byID: map[int64]user.User{}}
	for _, s := range seed {
		if s.ID == 0 {
			u.nextID++
			s.ID = u.nextID
		} else if s.ID > u.nextID {
			u.nextID = s.ID
		}
		u.byID[s.ID] = s
	}
	return u
}

func (u *Users) GetByID(ctx context.Context, id int64) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	found, ok := u.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return found, nil
}

func (u *Users) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, found := range u.byID {
		if strings.EqualFold(found.Email, email) {
			return found, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (u *Users) GetBySSOSubject(ctx context.Context, subject string) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, found := range u.byID {
		if found.SSOSubject != nil && *found.SSOSubject == subject {
			return found, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (u *Users) Create(ctx context.Context, newUser user.User) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, found := range u.byID {
		if strings.EqualFold(found.Email, newUser.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	if newUser.ManagerID != nil {
		if _, ok := u.byID[*newUser.ManagerID]; !ok {
			return user.User{}, user.ErrUnknownManager
		}
	}
	u.nextID++
	newUser.ID = u.nextID
	newUser.Email = strings.ToLower(newUser.Email)
	u.byID[newUser.ID] = newUser
	return newUser, nil
}

func (u *Users) Update(ctx context.Context, updated user.User) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.byID[updated.ID]; !ok {
		return user.User{}, user.ErrUserNotFound
	}
	if updated.ManagerID != nil {
		if _, ok := u.byID[*updated.ManagerID]; !ok {
			return user.User{}, user.ErrUnknownManager
		}
	}
	u.byID[updated.ID] = updated
	return updated, nil
}

func (u *Users) LinkSSOSubject(ctx context.Context, id int64, subject string) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	found, ok := u.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	found.SSOSubject = &subject
	u.byID[id] = found
	return found, nil
}

func (u *Users) SetActive(ctx context.Context, id int64, active bool) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	found, ok := u.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	found.IsActive = active
	u.byID[id] = found
	return found, nil
}

func (u *Users) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	all := u.sorted(func(x user.User) bool {
		if filter.Active != nil && x.IsActive != *filter.Active {
			return false
		}
		if filter.Role != nil && x.Role != *filter.Role {
			return false
		}
		if filter.Department != nil && (x.Department == nil || *x.Department != *filter.Department) {
			return false
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			return strings.Contains(strings.ToLower(x.FullName), q) || strings.Contains(x.Email, q)
		}
		return true
	})
	total := int64(len(all))
	if filter.Offset >= len(all) {
		return []user.User{}, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (u *Users) ListActive(ctx context.Context, department *string) ([]user.User, error) {
	return u.sorted(func(x user.User) bool {
		if !x.IsActive {
			return false
		}
		return department == nil || (x.Department != nil && *x.Department == *department)
	}), nil
}

func (u *Users) sorted(keep func(user.User) bool) []user.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := []user.User{}
	for _, x := range u.byID {
		if keep(x) {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
