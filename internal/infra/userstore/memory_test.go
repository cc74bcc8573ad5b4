//go:build unit

package userstore_test

import (
	"context"
	"testing"

	"cridaa-booking/internal/infra"
	"cridaa-booking/internal/infra/userstore"
	"cridaa-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create then find", func(t *testing.T) {
		store := userstore.NewMemoryStore()
		u, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, store.Create(ctx, u))

		byEmail, err := store.FindByEmail(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		byID, err := store.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Username, byID.Username)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		store := userstore.NewMemoryStore()
		first, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, first))

		second, err := builder.NewUserBuilder().WithUsername("someoneelse").BuildDomain()
		require.NoError(t, err)

		err = store.Create(ctx, second)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		store := userstore.NewMemoryStore()
		first, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, first))

		second, err := builder.NewUserBuilder().WithEmail("other@example.com").BuildDomain()
		require.NoError(t, err)

		err = store.Create(ctx, second)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("unknown lookups are NotFound", func(t *testing.T) {
		store := userstore.NewMemoryStore()

		_, err := store.FindByEmail(ctx, "ghost@example.com")
		assert.True(t, infra.IsKind(err, infra.KindNotFound))

		_, err = store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
