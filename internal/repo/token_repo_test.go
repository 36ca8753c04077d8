package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"billtrack/internal/model"
	appErr "billtrack/internal/pkg/errors"
)

func TestTokenRepoCreateAndGet(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("INSERT INTO access_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM access_tokens").
		WithArgs("tok-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ctime", "expires_at"}).
			AddRow("tok-1", int64(7), int64(100), int64(4000)))

	tokens := NewTokenRepo(conn)
	require.NoError(t, tokens.Create(context.Background(), &model.AccessToken{
		ID:        "tok-1",
		UserID:    7,
		Ctime:     100,
		ExpiresAt: 4000,
	}))

	record, err := tokens.Get(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Equal(t, int64(7), record.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepoGetNotFound(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT .+ FROM access_tokens").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ctime", "expires_at"}))

	tokens := NewTokenRepo(conn)
	_, err = tokens.Get(context.Background(), "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestTokenRepoDeleteByUser(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("DELETE FROM access_tokens").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	tokens := NewTokenRepo(conn)
	deleted, err := tokens.DeleteByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(3), deleted)
}

func TestTokenRepoDeleteExpired(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("DELETE FROM access_tokens").
		WithArgs(int64(5000)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	tokens := NewTokenRepo(conn)
	deleted, err := tokens.DeleteExpired(context.Background(), 5000)
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)
}
