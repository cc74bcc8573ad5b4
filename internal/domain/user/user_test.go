//go:build unit

package user_test

import (
	"testing"

	"cridaa-booking/internal/domain/user"
	"cridaa-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		u, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.Equal(t, "testuser", u.Username)
		assert.Equal(t, "test@example.com", u.Email)
	})

	t.Run("email is trimmed and lowercased", func(t *testing.T) {
		u, err := builder.NewUserBuilder().WithEmail("  Mixed.Case@Example.COM ").BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "mixed.case@example.com", u.Email)
	})

	cases := []struct {
		name   string
		mutate func(*builder.UserBuilder)
		errIs  error
	}{
		{
			name:   "empty username rejected",
			mutate: func(b *builder.UserBuilder) { b.WithUsername("") },
			errIs:  user.ErrInvalidUsername,
		},
		{
			name:   "whitespace username rejected",
			mutate: func(b *builder.UserBuilder) { b.WithUsername("   ") },
			errIs:  user.ErrInvalidUsername,
		},
		{
			name:   "invalid email rejected",
			mutate: func(b *builder.UserBuilder) { b.WithEmail("not-an-email") },
			errIs:  user.ErrInvalidEmail,
		},
		{
			name:   "email without domain rejected",
			mutate: func(b *builder.UserBuilder) { b.WithEmail("user@host") },
			errIs:  user.ErrInvalidEmail,
		},
		{
			name:   "empty password hash rejected",
			mutate: func(b *builder.UserBuilder) { b.WithPasswordHash("") },
			errIs:  user.ErrEmptyPassword,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewUserBuilder()
			tc.mutate(b)
			u, err := b.BuildDomain()

			assert.ErrorIs(t, err, tc.errIs)
			assert.Nil(t, u)
		})
	}
}
