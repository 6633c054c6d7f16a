package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnowak/users-service/internal/errs"
)

func TestParseSort(t *testing.T) {
	fields := []string{"id", "first_name", "last_name"}

	tests := []struct {
		name      string
		expr      string
		wantField string
		wantDir   SortDirection
		wantErr   bool
	}{
		{"empty expression", "", "", SortAsc, false},
		{"field only", "last_name", "last_name", SortAsc, false},
		{"field asc", "id,asc", "id", SortAsc, false},
		{"field desc", "first_name,desc", "first_name", SortDesc, false},
		{"uppercase direction", "id,DESC", "id", SortDesc, false},
		{"unknown field", "password,asc", "", "", true},
		{"unknown direction", "id,sideways", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			field, dir, err := ParseSort(tc.expr, fields...)
			if tc.wantErr {
				require.Error(t, err)
				var httpErr *errs.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, 400, httpErr.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantField, field)
			assert.Equal(t, tc.wantDir, dir)
		})
	}
}

func TestNewPage(t *testing.T) {
	q := PageQuery{Page: 1, Size: 2}

	page := NewPage([]User{{ID: 3}}, q, 5)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Size)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	empty := NewPage[User](nil, PageQuery{Page: 0, Size: 10}, 0)
	assert.NotNil(t, empty.Content)
	assert.Empty(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestPageQueryOffset(t *testing.T) {
	assert.Equal(t, 0, PageQuery{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 40, PageQuery{Page: 2, Size: 20}.Offset())
}
