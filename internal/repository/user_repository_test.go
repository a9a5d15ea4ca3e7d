package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "google_id", "email", "name", "password_hash", "profile_picture", "bio", "two_factor_enabled", "created_at", "updated_at"}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery("FROM users WHERE email = \\$1").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(1), "", "a@example.com", "Amy", "hash", "", "", true, now, now))

	user, found, err := NewUserRepository(db).GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Amy", user.Name)
	assert.True(t, user.HasPassword())
	assert.True(t, user.TwoFactorEnabled)
}

func TestUserRepository_GetByEmail_NullPassword(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery("FROM users WHERE email = \\$1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(2), "g-1", "g@example.com", "G", nil, "", "", false, now, now))

	user, found, err := NewUserRepository(db).GetByEmail(context.Background(), "g@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, user.HasPassword())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM users WHERE id = \\$1").WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(userCols))

	user, found, err := NewUserRepository(db).GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, user)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("newhash", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewUserRepository(db).UpdatePassword(context.Background(), nil, 3, "newhash"))
}
