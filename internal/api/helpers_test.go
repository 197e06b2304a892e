package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/api/middleware"
	"github.com/phrazzld/finances-api/internal/api/shared"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/platform/logger"
	"github.com/phrazzld/finances-api/internal/platform/memory"
	"github.com/phrazzld/finances-api/internal/service"
	"github.com/phrazzld/finances-api/internal/service/auth"
	"github.com/phrazzld/finances-api/internal/store"
	"github.com/stretchr/testify/require"
)

// testAPI is a router over real services backed by the in-memory store.
type testAPI struct {
	handler http.Handler
	db      *memory.DB
	logs    *logger.TestLogBuffer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWith(t, nil)
}

// newTestAPIWith is newTestAPI with the entry service passed through wrap
// before it reaches the handlers.
func newTestAPIWith(t *testing.T, wrap func(service.EntryService) service.EntryService) *testAPI {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	db := memory.NewDB(log)

	users, err := service.NewUserService(db.Users(), db, auth.NewPlaintextVerifier(), log)
	require.NoError(t, err)
	entries, err := service.NewEntryService(db.Entries(), log)
	require.NoError(t, err)
	if wrap != nil {
		entries = wrap(entries)
	}

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(log))
	RegisterRoutes(r, NewEntryHandler(entries, users, log), NewUserHandler(users, entries, log))

	return &testAPI{handler: r, db: db, logs: buf}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

// seedUser stores a user directly and returns it with its assigned ID.
func (a *testAPI) seedUser(t *testing.T, name, email, password string) *domain.User {
	t.Helper()
	u := domain.NewUser(name, email, password)
	require.NoError(t, a.db.Users().Create(context.Background(), u))
	return u
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, w).Error
}

func storeFilterForUser(id uuid.UUID) store.EntryFilter {
	return store.EntryFilter{UserID: &id}
}
