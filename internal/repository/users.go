package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jnowak/users-service/internal/domain"
)

// UsersRepository is the persistence contract for user rows.
//
// GetByID and UpdateName return pgx.ErrNoRows (wrapped) when no row matches;
// callers translate that into their own absence outcome.
type UsersRepository interface {
	Insert(ctx context.Context, firstName, lastName string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	List(ctx context.Context, q domain.PageQuery) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateName(ctx context.Context, id int64, firstName, lastName string) (domain.User, error)
	Delete(ctx context.Context, id int64) error
	FindByLastName(ctx context.Context, lastName string, contains bool) ([]domain.User, error)
}

type usersRepository struct {
	pool *pgxpool.Pool
}

// NewUsersRepository returns a UsersRepository backed by the given pool.
func NewUsersRepository(pool *pgxpool.Pool) UsersRepository {
	return &usersRepository{pool: pool}
}

const (
	sqlInsertUser = `
		INSERT INTO users (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id, first_name, last_name`

	sqlGetUserByID = `
		SELECT id, first_name, last_name
		FROM   users
		WHERE  id = $1`

	sqlCountUsers = `
		SELECT COUNT(*) FROM users`

	sqlUpdateUserName = `
		UPDATE users
		SET    first_name = $2, last_name = $3
		WHERE  id = $1
		RETURNING id, first_name, last_name`

	sqlDeleteUser = `
		DELETE FROM users WHERE id = $1`

	sqlFindByLastNameExact = `
		SELECT id, first_name, last_name
		FROM   users
		WHERE  LOWER(last_name) = LOWER($1)
		ORDER  BY id`

	sqlFindByLastNameContains = `
		SELECT id, first_name, last_name
		FROM   users
		WHERE  last_name ILIKE '%' || $1 || '%'
		ORDER  BY id`
)

// sortColumns whitelists the sortable columns of the listing. Keys are the
// wire-level field names accepted in the sort parameter.
var sortColumns = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"last_name":  "last_name",
}

// SortableFields lists the field names accepted by the listing's sort
// parameter.
func SortableFields() []string {
	return []string{"id", "first_name", "last_name"}
}

func (r *usersRepository) Insert(ctx context.Context, firstName, lastName string) (domain.User, error) {
	row := r.pool.QueryRow(ctx, sqlInsertUser, firstName, lastName)
	return scanUser(row)
}

func (r *usersRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.pool.QueryRow(ctx, sqlGetUserByID, id)
	return scanUser(row)
}

func (r *usersRepository) List(ctx context.Context, q domain.PageQuery) ([]domain.User, error) {
	// Insertion order unless a sort was requested. The column is resolved
	// through the whitelist, never interpolated from client input directly.
	orderBy := "id"
	direction := "ASC"
	if q.SortField != "" {
		column, ok := sortColumns[q.SortField]
		if !ok {
			return nil, fmt.Errorf("unsortable field %q", q.SortField)
		}
		orderBy = column
		if q.SortDir == domain.SortDesc {
			direction = "DESC"
		}
	}

	sql := fmt.Sprintf(`
		SELECT id, first_name, last_name
		FROM   users
		ORDER  BY %s %s, id ASC
		LIMIT  $1 OFFSET $2`, orderBy, direction)

	rows, err := r.pool.Query(ctx, sql, q.Size, q.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *usersRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, sqlCountUsers).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *usersRepository) UpdateName(ctx context.Context, id int64, firstName, lastName string) (domain.User, error) {
	row := r.pool.QueryRow(ctx, sqlUpdateUserName, id, firstName, lastName)
	return scanUser(row)
}

func (r *usersRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, sqlDeleteUser, id)
	return err
}

func (r *usersRepository) FindByLastName(ctx context.Context, lastName string, contains bool) ([]domain.User, error) {
	var rows pgx.Rows
	var err error
	if contains {
		rows, err = r.pool.Query(ctx, sqlFindByLastNameContains, escapeLike(lastName))
	} else {
		rows, err = r.pool.Query(ctx, sqlFindByLastNameExact, lastName)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters in user input so a search for
// "100%" matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
