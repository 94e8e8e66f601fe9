package repository

import (
	"context"
	"testing"
	"time"

	"nexify_backend/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "name", "email", "image", "role", "created_at"}).
		AddRow("u1", "Test User", "user@example.com", "", model.RoleModerator, now)
	mock.ExpectQuery(`SELECT id, name, email, image, role, created_at FROM users WHERE email = \$1`).
		WithArgs("user@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "user@example.com")
	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, model.RoleModerator, user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT id, name, email, image, role, created_at FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "image", "role", "created_at"}))

	user, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user) // absence is not an error

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	user := &model.User{
		ID:        "u1",
		Name:      "Test User",
		Email:     "user@example.com",
		Role:      model.RoleUser,
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Name, user.Email, user.Image, user.Role, user.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRole(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2`).
		WithArgs(model.RoleAdmin, "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	modified, err := repo.UpdateRole(context.Background(), "u1", model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRole_NoSuchUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2`).
		WithArgs(model.RoleModerator, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	modified, err := repo.UpdateRole(context.Background(), "missing", model.RoleModerator)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), modified)

	assert.NoError(t, mock.ExpectationsWereMet())
}
