package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/jnowak/users-service/internal/domain"
)

// MemoryUsersRepository is an in-memory UsersRepository mirroring the
// behavior of the Postgres implementation: monotonically increasing ids,
// insertion order as the natural order, pgx.ErrNoRows for absent rows. It is
// used by tests and is safe for concurrent use.
type MemoryUsersRepository struct {
	mu     sync.Mutex
	nextID int64
	users  []domain.User
}

// NewMemoryUsersRepository returns an empty in-memory repository.
func NewMemoryUsersRepository() *MemoryUsersRepository {
	return &MemoryUsersRepository{nextID: 1}
}

func (r *MemoryUsersRepository) Insert(_ context.Context, firstName, lastName string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := domain.User{ID: r.nextID, FirstName: firstName, LastName: lastName}
	r.nextID++
	r.users = append(r.users, u)
	return u, nil
}

func (r *MemoryUsersRepository) GetByID(_ context.Context, id int64) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (r *MemoryUsersRepository) List(_ context.Context, q domain.PageQuery) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]domain.User, len(r.users))
	copy(users, r.users)

	if q.SortField != "" {
		desc := q.SortDir == domain.SortDesc
		sort.SliceStable(users, func(i, j int) bool {
			a, b := users[i], users[j]
			if desc {
				a, b = b, a
			}
			switch q.SortField {
			case "id":
				return a.ID < b.ID
			case "first_name":
				if a.FirstName != b.FirstName {
					return a.FirstName < b.FirstName
				}
			case "last_name":
				if a.LastName != b.LastName {
					return a.LastName < b.LastName
				}
			}
			// Ties keep insertion order, which is ascending id.
			return false
		})
	}

	start := q.Offset()
	if start >= len(users) {
		return nil, nil
	}
	end := start + q.Size
	if end > len(users) {
		end = len(users)
	}
	return users[start:end], nil
}

func (r *MemoryUsersRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *MemoryUsersRepository) UpdateName(_ context.Context, id int64, firstName, lastName string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users[i].FirstName = firstName
			r.users[i].LastName = lastName
			return r.users[i], nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (r *MemoryUsersRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	// Deleting an absent row is not a storage error.
	return nil
}

func (r *MemoryUsersRepository) FindByLastName(_ context.Context, lastName string, contains bool) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(lastName)
	var matches []domain.User
	for _, u := range r.users {
		haystack := strings.ToLower(u.LastName)
		if contains && strings.Contains(haystack, needle) {
			matches = append(matches, u)
		} else if !contains && haystack == needle {
			matches = append(matches, u)
		}
	}
	return matches, nil
}
