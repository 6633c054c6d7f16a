package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jnowak/users-service/internal/config"
	"github.com/jnowak/users-service/internal/domain"
	"github.com/jnowak/users-service/internal/repository"
	"github.com/jnowak/users-service/internal/server"
)

// UsersService owns the business rules of the users API: listing with
// pagination, lookups, the configurable last-name search, and the
// create/update/partial-update/delete lifecycle.
//
// Lookups report absence as an explicit boolean outcome rather than an error;
// only the HTTP boundary turns absence into a 404.
type UsersService struct {
	repo repository.UsersRepository

	// contains selects the last-name match mode: substring containment when
	// true, exact equality otherwise. Both are case-insensitive.
	contains bool

	defaultPageSize int
	maxPageSize     int
}

// NewUsersService constructs the users service, reading the search mode and
// paging caps from configuration.
func NewUsersService(s *server.Server, repo repository.UsersRepository) *UsersService {
	return &UsersService{
		repo:            repo,
		contains:        s.Config.Users.LastNameMatch == config.MatchContains,
		defaultPageSize: s.Config.Users.DefaultPageSize,
		maxPageSize:     s.Config.Users.MaxPageSize,
	}
}

// ListAll returns one zero-based page of all users plus total-count metadata.
// A zero size falls back to the configured default; sizes above the
// configured maximum are capped. sort is an optional "field[,direction]"
// expression over the sortable columns.
func (s *UsersService) ListAll(ctx context.Context, page, size int, sort string) (domain.Page[domain.User], error) {
	if size <= 0 {
		size = s.defaultPageSize
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}
	if page < 0 {
		page = 0
	}

	sortField, sortDir, err := domain.ParseSort(sort, repository.SortableFields()...)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}

	q := domain.PageQuery{
		Page:      page,
		Size:      size,
		SortField: sortField,
		SortDir:   sortDir,
	}

	users, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}

	return domain.NewPage(users, q, total), nil
}

// GetByID returns the user with the given id. The boolean reports whether the
// user exists; a false result with a nil error is the not-found outcome.
func (s *UsersService) GetByID(ctx context.Context, id int64) (domain.User, bool, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

// FindByLastName returns every user matching lastName, case-insensitively,
// in insertion order and with duplicate name pairs kept: each row is a
// distinct user. An empty input matches nothing and skips the storage call
// entirely.
func (s *UsersService) FindByLastName(ctx context.Context, lastName string) ([]domain.User, error) {
	if lastName == "" {
		return []domain.User{}, nil
	}

	users, err := s.repo.FindByLastName(ctx, lastName, s.contains)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// FirstNamesByLastName returns the first names of users matching lastName
// with duplicates removed, preserving first-occurrence order. Unlike the full
// record search this projection is about names, not identities, so "Jan
// Nowak" appearing twice yields one "Jan".
func (s *UsersService) FirstNamesByLastName(ctx context.Context, lastName string) ([]string, error) {
	users, err := s.FindByLastName(ctx, lastName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(users))
	firstNames := make([]string, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.FirstName]; ok {
			continue
		}
		seen[u.FirstName] = struct{}{}
		firstNames = append(firstNames, u.FirstName)
	}
	return firstNames, nil
}

// Create validates both names and persists a new user, returning the row with
// its database-assigned id.
func (s *UsersService) Create(ctx context.Context, firstName, lastName string) (domain.User, error) {
	if err := validateNames(firstName, lastName); err != nil {
		return domain.User{}, err
	}
	return s.repo.Insert(ctx, firstName, lastName)
}

// FullUpdate overwrites both name fields of the user with the given id. The
// id itself never changes. Absence is reported via the boolean, exactly as in
// GetByID.
func (s *UsersService) FullUpdate(ctx context.Context, id int64, firstName, lastName string) (domain.User, bool, error) {
	if err := validateNames(firstName, lastName); err != nil {
		return domain.User{}, false, err
	}

	user, err := s.repo.UpdateName(ctx, id, firstName, lastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

// PartialUpdate overwrites only the supplied fields, keeping stored values
// for absent ones. A supplied-but-invalid field fails the whole operation;
// no partial application happens.
func (s *UsersService) PartialUpdate(ctx context.Context, id int64, patch domain.PatchUser) (domain.User, bool, error) {
	if patch.FirstName != nil {
		if err := domain.ValidateName("first_name", *patch.FirstName); err != nil {
			return domain.User{}, false, err
		}
	}
	if patch.LastName != nil {
		if err := domain.ValidateName("last_name", *patch.LastName); err != nil {
			return domain.User{}, false, err
		}
	}

	user, found, err := s.GetByID(ctx, id)
	if err != nil || !found {
		return domain.User{}, found, err
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}

	updated, err := s.repo.UpdateName(ctx, id, user.FirstName, user.LastName)
	if errors.Is(err, pgx.ErrNoRows) {
		// Deleted between lookup and write; surfaces as not found.
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return updated, true, nil
}

// DeleteByID deletes the user with the given id. It looks the row up first so
// callers can distinguish "deleted" from "was already absent".
func (s *UsersService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	_, found, err := s.GetByID(ctx, id)
	if err != nil || !found {
		return false, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func validateNames(firstName, lastName string) error {
	if err := domain.ValidateName("first_name", firstName); err != nil {
		return err
	}
	return domain.ValidateName("last_name", lastName)
}
