// Package domain holds the User entity and the value types that cross the
// service boundary: creation/update inputs, the partial-update input with
// optional fields, and the paging types.
package domain

import (
	"fmt"

	"github.com/jnowak/users-service/internal/errs"
)

// Name length bounds enforced on create, full update, and any supplied
// partial-update field.
const (
	NameMinLen = 2
	NameMaxLen = 50
)

// User is a persisted user row. ID is assigned by the database and never
// changes after creation.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserName is the projection used by the last-name search endpoints. The id is
// deliberately withheld: those endpoints return name pairs only.
type UserName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Name returns the search projection of u.
func (u User) Name() UserName {
	return UserName{FirstName: u.FirstName, LastName: u.LastName}
}

// PatchUser carries the optional fields of a partial update. A nil field means
// "leave the stored value unchanged".
type PatchUser struct {
	FirstName *string
	LastName  *string
}

// ValidateName checks a single name value against the length bounds and
// returns a field-scoped 400 error when it fails. The field argument is the
// wire name ("first_name" or "last_name").
func ValidateName(field, value string) error {
	if value == "" {
		return errs.NewBadRequestError("Validation failed", nil, []errs.FieldError{
			{Field: field, Error: "is required"},
		})
	}
	if n := len([]rune(value)); n < NameMinLen || n > NameMaxLen {
		return errs.NewBadRequestError("Validation failed", nil, []errs.FieldError{
			{Field: field, Error: fmt.Sprintf("length must be between %d and %d characters", NameMinLen, NameMaxLen)},
		})
	}
	return nil
}
