package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"billtrack/internal/handler"
	"billtrack/internal/pkg/timeutil"
	"billtrack/internal/pkg/token"
	"billtrack/internal/repo"
	"billtrack/internal/service"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	userRepo := repo.NewUserRepo(conn)
	billRepo := repo.NewBillRepo(conn)
	tokenRepo := repo.NewTokenRepo(conn)

	authService := service.NewAuthService(userRepo, tokenRepo, testSecret, time.Hour)
	userService := service.NewUserService(conn, userRepo, 40)
	billService := service.NewBillService(conn, billRepo, 40)

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Profile:       handler.NewProfileHandler(userService),
		Users:         handler.NewUserHandler(userService),
		Bills:         handler.NewBillHandler(billService),
		Authenticator: authService,
		LoginWindow:   0,
	}

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api"), deps)
	return engine, mock
}

func bearerToken(t *testing.T, userID int64, tokenID string) string {
	t.Helper()
	signed, err := token.Generate(userID, tokenID, testSecret, time.Hour)
	require.NoError(t, err)
	return signed
}

// expectAuth queues the access_tokens lookup the auth middleware performs
// for one authenticated request.
func expectAuth(mock sqlmock.Sqlmock, userID int64, tokenID string) {
	now := timeutil.NowUnix()
	mock.ExpectQuery("SELECT .+ FROM access_tokens").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ctime", "expires_at"}).
			AddRow(tokenID, userID, now, now+3600))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}
