package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-profile-api/internal/domain/user"
)

func TestToDomainPatch_FromJSON(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, p domain.Patch)
	}{
		{
			name: "only email",
			body: `{"email":"new@example.com"}`,
			check: func(t *testing.T, p domain.Patch) {
				v, ok := p.Email.Get()
				assert.True(t, ok)
				assert.Equal(t, "new@example.com", v)
				assert.False(t, p.FirstName.IsSet())
				assert.False(t, p.LastName.IsSet())
				assert.False(t, p.BirthDate.IsSet())
				assert.False(t, p.Address.IsSet())
				assert.False(t, p.PhoneNumber.IsSet())
			},
		},
		{
			name: "null required field is unspecified",
			body: `{"first_name":null}`,
			check: func(t *testing.T, p domain.Patch) {
				assert.False(t, p.FirstName.IsSet())
			},
		},
		{
			name: "address cleared, phone set",
			body: `{"address":"","phone_number":"+100"}`,
			check: func(t *testing.T, p domain.Patch) {
				a, ok := p.Address.Get()
				require.True(t, ok)
				require.NotNil(t, a)
				assert.Equal(t, "", *a)
				ph, ok := p.PhoneNumber.Get()
				require.True(t, ok)
				assert.Equal(t, "+100", *ph)
			},
		},
		{
			name: "birth date parsed",
			body: `{"birth_date":"2000-01-02"}`,
			check: func(t *testing.T, p domain.Patch) {
				d, ok := p.BirthDate.Get()
				require.True(t, ok)
				assert.Equal(t, time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), d)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req PatchRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			p, err := ToDomainPatch(req)
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestToDomainPatch_BadDate(t *testing.T) {
	bad := "01/02/2000"
	_, err := ToDomainPatch(PatchRequest{BirthDate: &bad})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestToResponseUser(t *testing.T) {
	id := uuid.New()
	addr := "1 Main St"
	got := ToResponseUser(domain.User{
		UUID:      id,
		Email:     "a@b.c",
		FirstName: "A",
		LastName:  "B",
		BirthDate: time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		Address:   &addr,
	})

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "1999-12-31", got.BirthDate)
	assert.Equal(t, &addr, got.Address)
	assert.Nil(t, got.PhoneNumber)
}
