package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/theater-reservation-system/api"
	appvalidator "github.com/metinatakli/theater-reservation-system/internal/validator"
	"github.com/stretchr/testify/require"
)

func newTestApplication() *application {
	cfg := config{env: "test", adminEmail: "admin@theater.example"}

	return &application{
		config:         cfg,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator:      appvalidator.NewValidator(),
		sessionManager: scs.New(),
	}
}

// setupTestSession seeds a session in the in-memory store and returns the
// cookie that carries it.
func setupTestSession(t *testing.T, app *application, userID int, isAdmin bool) *http.Cookie {
	t.Helper()

	ctx, err := app.sessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	app.sessionManager.Put(ctx, SessionKeyUserId, userID)
	app.sessionManager.Put(ctx, SessionKeyIsAdmin, isAdmin)

	token, _, err := app.sessionManager.Commit(ctx)
	require.NoError(t, err)

	return &http.Cookie{Name: app.sessionManager.Cookie.Name, Value: token}
}

func executeRequest(app *application, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}

func checkErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantMessage string) {
	t.Helper()

	require.Equal(t, wantStatus, rr.Code)

	var resp api.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Equal(t, wantMessage, resp.Message)
}
