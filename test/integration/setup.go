// Package integration provides helpers and integration tests for the room filter service.
// Integration tests run the full HTTP stack (middleware, handlers, sessions,
// catalog and storage) the way cmd/server wires it.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/hotel-site/room-filter/internal/adapter/http"
	"github.com/hotel-site/room-filter/internal/adapter/http/middleware"
	"github.com/hotel-site/room-filter/internal/catalog"
	"github.com/hotel-site/room-filter/internal/domain"
	"github.com/hotel-site/room-filter/internal/infrastructure/timeutil"
	"github.com/hotel-site/room-filter/internal/kvstore"
	"github.com/hotel-site/room-filter/internal/query"
	"github.com/hotel-site/room-filter/internal/session"
	"github.com/hotel-site/room-filter/test/testutil"
)

// ServerOptions configures a TestServer. Zero values pick test defaults.
type ServerOptions struct {
	Rooms       []domain.Room
	Storage     query.Storage
	Clock       timeutil.Clock
	PageSize    int
	MaxSessions int
	Logger      zerolog.Logger
}

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo     *echo.Echo
	Sessions *session.Manager
	Storage  query.Storage
}

// NewTestServer creates a test server over the server catalog in data/rooms.yaml.
func NewTestServer(t *testing.T, opts ServerOptions) *TestServer {
	t.Helper()

	rooms := opts.Rooms
	if rooms == nil {
		rooms = LoadServerCatalog(t)
	}
	store := opts.Storage
	if store == nil {
		store = kvstore.NewMemory()
	}

	sessions := session.NewManager(rooms, &session.Config{
		IdleTimeout: 10 * time.Minute,
		MaxSessions: opts.MaxSessions,
		PageSize:    opts.PageSize,
		Storage:     store,
		Clock:       opts.Clock,
		Logger:      opts.Logger,
	})
	t.Cleanup(sessions.Close)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e, opts.Logger, false)
	httpAdapter.RegisterRoutes(e, httpAdapter.NewRoomHandler(sessions, "en"))

	return &TestServer{Echo: e, Sessions: sessions, Storage: store}
}

// LoadServerCatalog loads the catalog the server ships with.
func LoadServerCatalog(t *testing.T) []domain.Room {
	t.Helper()
	rooms, err := catalog.Load(filepath.Join(testutil.ProjectRoot(t), "data", "rooms.yaml"))
	require.NoError(t, err)
	return rooms
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(method, path string, body any) Response {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// CreateSession posts body to /sessions and requires a 201.
func (ts *TestServer) CreateSession(t *testing.T, path string, body any) httpAdapter.SessionResponse {
	t.Helper()
	if path == "" {
		path = "/api/v1/sessions"
	}
	resp := ts.Do(http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Body))
	return ParseJSON[httpAdapter.SessionResponse](t, resp)
}

// Session calls a session endpoint with settle=true and requires a 200.
func (ts *TestServer) Session(t *testing.T, method, id, suffix string, body any) httpAdapter.SessionResponse {
	t.Helper()
	resp := ts.Do(method, "/api/v1/sessions/"+id+suffix+"?settle=true", body)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	return ParseJSON[httpAdapter.SessionResponse](t, resp)
}

// ParseJSON decodes the response body into T.
func ParseJSON[T any](t *testing.T, r Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(r.Body, &v), string(r.Body))
	return v
}

// NewFileStore opens a file store in a per-test temporary directory.
func NewFileStore(t *testing.T, dir string) *kvstore.File {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	store, err := kvstore.NewFile(dir)
	require.NoError(t, err)
	return store
}
