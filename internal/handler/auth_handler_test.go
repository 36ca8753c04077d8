package handler_test

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"billtrack/internal/pkg/password"
	"billtrack/internal/pkg/timeutil"
)

var userRows = []string{"id", "name", "email", "password_hash", "ctime", "mtime"}

func seedUserRow(t *testing.T, mock sqlmock.Sqlmock, id int64, email, plain string) {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	now := timeutil.NowUnix()
	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(id, "Alice", email, hash, now, now))
}

func TestLoginIssuesUsableToken(t *testing.T) {
	router, mock := newTestRouter(t)

	seedUserRow(t, mock, 7, "alice@example.com", "secret1")
	mock.ExpectExec("INSERT INTO access_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["status"])
	signed, _ := body["token"].(string)
	require.NotEmpty(t, signed)
	user, _ := body["user"].(map[string]interface{})
	require.Equal(t, float64(7), user["id"])

	// the issued token resolves back to the same identity
	expectAuth(mock, 7, "any")
	seedUserRow(t, mock, 7, "alice@example.com", "secret1")
	resp = doJSON(t, router, http.MethodGet, "/api/profile", nil, signed)
	require.Equal(t, http.StatusOK, resp.Code)
	body = decodeBody(t, resp)
	profile, _ := body["user"].(map[string]interface{})
	require.Equal(t, float64(7), profile["id"])
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	router, mock := newTestRouter(t)

	// wrong password
	seedUserRow(t, mock, 7, "alice@example.com", "secret1")
	respWrong := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"email":    "alice@example.com",
		"password": "nope",
	}, "")

	// unknown email
	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(sqlmock.NewRows(userRows))
	respUnknown := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "secret1",
	}, "")

	require.Equal(t, http.StatusNotFound, respWrong.Code)
	require.Equal(t, http.StatusNotFound, respUnknown.Code)
	require.JSONEq(t, respWrong.Body.String(), respUnknown.Body.String())

	body := decodeBody(t, respWrong)
	require.Equal(t, false, body["status"])
	require.Equal(t, "Incorrect login or password.", body["message"])
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	router, mock := newTestRouter(t)
	signed := bearerToken(t, 7, "tok-1")

	expectAuth(mock, 7, "tok-1")
	mock.ExpectExec("DELETE FROM access_tokens").
		WillReturnResult(sqlmock.NewResult(0, 2))

	resp := doJSON(t, router, http.MethodPost, "/api/logout", nil, signed)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["status"])

	// the record is gone, so the same token no longer authenticates
	mock.ExpectQuery("SELECT .+ FROM access_tokens").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ctime", "expires_at"}))
	resp = doJSON(t, router, http.MethodGet, "/api/profile", nil, signed)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
