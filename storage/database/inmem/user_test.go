package inmemdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmog/academy/core/user"
	inmemdb "github.com/jmog/academy/storage/database/inmem"
)

func setup(t *testing.T) user.Repository {
	t.Helper()

	db, err := inmemdb.Open()
	require.NoError(t, err)
	return inmemdb.NewUserRepository(db)
}

func TestUserRepository_CreateUser_generatesFreshIDs(t *testing.T) {
	repo := setup(t)
	require.NoError(t, user.SeedDemo(repo))

	created, err := repo.CreateUser(user.User{
		Email: "lucia@demo.com",
		Name:  "Lucía Romero",
		Role:  user.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "5", created.ID)

	// the seeded records survive the insert
	for _, seeded := range user.DemoUsers() {
		got, err := repo.GetUserByID(seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, seeded.Email, got.Email)
	}

	all, err := repo.QueryAllUsers()
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestUserRepository_CreateUser_explicitIDAdvancesCounter(t *testing.T) {
	repo := setup(t)

	_, err := repo.CreateUser(user.User{ID: "10", Email: "a@demo.com", Name: "A", Role: user.RoleStudent})
	require.NoError(t, err)

	created, err := repo.CreateUser(user.User{Email: "b@demo.com", Name: "B", Role: user.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "11", created.ID)
}
