package handler_test

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"billtrack/internal/pkg/timeutil"
)

func TestUserCreateHidesPassword(t *testing.T) {
	router, mock := newTestRouter(t)
	signed := bearerToken(t, 7, "tok-1")

	expectAuth(mock, 7, "tok-1")
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	resp := doJSON(t, router, http.MethodPost, "/api/users", map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "secret1",
	}, signed)
	require.Equal(t, http.StatusCreated, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["status"])
	require.Equal(t, "User created successfully!", body["message"])
	user, _ := body["user"].(map[string]interface{})
	require.Equal(t, float64(12), user["id"])
	require.Equal(t, "bob@example.com", user["email"])
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "password_hash")
	require.NotContains(t, resp.Body.String(), "secret1")
}

func TestUserCreateValidation(t *testing.T) {
	router, mock := newTestRouter(t)
	signed := bearerToken(t, 7, "tok-1")

	expectAuth(mock, 7, "tok-1")
	resp := doJSON(t, router, http.MethodPost, "/api/users", map[string]string{
		"name":     "Bob",
		"email":    "not-an-email",
		"password": "short",
	}, signed)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, false, body["status"])
	errs, _ := body["errors"].(map[string]interface{})
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
	require.NotContains(t, errs, "name")
}

func TestUserListPaginates(t *testing.T) {
	router, mock := newTestRouter(t)
	signed := bearerToken(t, 7, "tok-1")
	now := timeutil.NowUnix()

	expectAuth(mock, 7, "tok-1")
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(int64(2), "Bob", "bob@example.com", "x", now, now).
			AddRow(int64(1), "Alice", "alice@example.com", "x", now, now))

	resp := doJSON(t, router, http.MethodGet, "/api/users", nil, signed)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["status"])
	require.Equal(t, float64(1), body["page"])
	require.Equal(t, float64(2), body["total"])
	require.Equal(t, float64(1), body["total_pages"])
	users, _ := body["users"].([]interface{})
	require.Len(t, users, 2)
	first, _ := users[0].(map[string]interface{})
	require.Equal(t, float64(2), first["id"])
}

func TestUserDeleteEchoesRemovedUser(t *testing.T) {
	router, mock := newTestRouter(t)
	signed := bearerToken(t, 7, "tok-1")
	now := timeutil.NowUnix()

	expectAuth(mock, 7, "tok-1")
	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(int64(5), "Carol", "carol@example.com", "x", now, now))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := doJSON(t, router, http.MethodDelete, "/api/users/5", nil, signed)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, "User deleted successfully!", body["message"])
	user, _ := body["user"].(map[string]interface{})
	require.Equal(t, float64(5), user["id"])
}
