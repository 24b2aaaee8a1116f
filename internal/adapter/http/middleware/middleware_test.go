package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel-site/room-filter/internal/adapter/http/response"
)

func newContext(method, target string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func logEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log output should be valid JSON")
	return entry
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "generates when missing", incoming: ""},
		{name: "propagates existing", incoming: "existing-request-id-12345", wantSame: true},
		{name: "replaces oversized", incoming: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := newContext(http.MethodGet, "/api/v1/rooms")
			if tt.incoming != "" {
				c.Request().Header.Set(RequestIDHeader, tt.incoming)
			}

			handler := RequestID()(func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			})
			require.NoError(t, handler(c))

			reqID := rec.Header().Get(RequestIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, reqID)
			} else {
				assert.Len(t, reqID, 36, "should be UUID format")
			}
			assert.Equal(t, reqID, GetRequestID(c))
		})
	}
}

func TestGetRequestID_ReturnsEmptyWhenNotSet(t *testing.T) {
	_, c, _ := newContext(http.MethodGet, "/")
	assert.Empty(t, GetRequestID(c))
}

func TestRequestLogger_LogsRequestDetails(t *testing.T) {
	var logBuf bytes.Buffer
	log := zerolog.New(&logBuf)

	_, c, _ := newContext(http.MethodPut, "/api/v1/sessions/abc/search?settle=true")
	c.SetPath("/api/v1/sessions/:id/search")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set(requestIDKey, "test-req-id-123")

	handler := RequestLogger(log)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	entry := logEntry(t, &logBuf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test-req-id-123", entry["request_id"])
	assert.Equal(t, "abc", entry["session_id"])
	assert.Equal(t, "PUT", entry["method"])
	assert.Equal(t, "/api/v1/sessions/:id/search", entry["route"])
	assert.Equal(t, "/api/v1/sessions/abc/search", entry["path"])
	assert.Equal(t, "settle=true", entry["query"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Contains(t, entry, "duration_ms")
	assert.Equal(t, "HTTP request", entry["message"])
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name      string
		handler   echo.HandlerFunc
		wantLevel string
		wantCode  int
	}{
		{
			name:      "client error",
			handler:   func(c echo.Context) error { return response.SessionNotFound(c) },
			wantLevel: "warn",
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "returned error",
			handler:   func(c echo.Context) error { return errors.New("boom") },
			wantLevel: "error",
			wantCode:  http.StatusInternalServerError,
		},
		{
			name:      "http error",
			handler:   func(c echo.Context) error { return echo.ErrMethodNotAllowed },
			wantLevel: "warn",
			wantCode:  http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			_, c, rec := newContext(http.MethodGet, "/api/v1/rooms")

			err := RequestLogger(zerolog.New(&logBuf))(tt.handler)(c)
			require.NoError(t, err, "errors are handled by the logger")

			assert.Equal(t, tt.wantCode, rec.Code)
			entry := logEntry(t, &logBuf)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.NotContains(t, entry, "session_id")
		})
	}
}

func TestRecover(t *testing.T) {
	tests := []struct {
		name       string
		panicValue any
		printStack bool
		wantPanic  string
	}{
		{name: "string panic", panicValue: "predicate failed", printStack: true, wantPanic: "predicate failed"},
		{name: "error panic", panicValue: errors.New("index out of range"), wantPanic: "index out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			_, c, rec := newContext(http.MethodGet, "/api/v1/rooms")
			c.Set(requestIDKey, "panic-req")

			handler := Recover(zerolog.New(&logBuf), tt.printStack)(func(c echo.Context) error {
				panic(tt.panicValue)
			})

			assert.NotPanics(t, func() { _ = handler(c) })
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var detail response.ErrorDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
			assert.Equal(t, response.CodeInternalError, detail.Code)

			entry := logEntry(t, &logBuf)
			assert.Equal(t, "Panic recovered", entry["message"])
			assert.Equal(t, "panic-req", entry["request_id"])
			assert.Equal(t, tt.wantPanic, entry["panic"])
			if tt.printStack {
				assert.Contains(t, entry["stack"], "goroutine")
			} else {
				assert.NotContains(t, entry, "stack")
			}
		})
	}
}

func TestRecover_PassesThroughNormalRequests(t *testing.T) {
	var logBuf bytes.Buffer
	_, c, rec := newContext(http.MethodGet, "/health")

	handler := Recover(zerolog.New(&logBuf), true)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, logBuf.String())
}

func TestRecover_RepanicsOnAbort(t *testing.T) {
	_, c, _ := newContext(http.MethodGet, "/")

	handler := Recover(zerolog.Nop(), false)(func(c echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = handler(c) })
}

func TestSetup(t *testing.T) {
	var logBuf bytes.Buffer
	e := echo.New()
	Setup(e, zerolog.New(&logBuf), false)

	e.GET("/api/v1/sessions/:id", func(c echo.Context) error {
		if c.Param("id") == "bad" {
			panic("corrupt session")
		}
		return c.String(http.StatusOK, "ok")
	})

	t.Run("normal request", func(t *testing.T) {
		logBuf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/good", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		reqID := rec.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, reqID)

		entry := logEntry(t, &logBuf)
		assert.Equal(t, reqID, entry["request_id"])
		assert.Equal(t, "good", entry["session_id"])
	})

	t.Run("panic is logged with request id", func(t *testing.T) {
		logBuf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/bad", nil)
		req.Header.Set(RequestIDHeader, "chain-req")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		lines := strings.Split(strings.TrimSpace(logBuf.String()), "\n")
		require.Len(t, lines, 2, "panic then request log")
		assert.Contains(t, lines[0], "Panic recovered")
		assert.Contains(t, lines[0], "chain-req")
		assert.Contains(t, lines[1], `"status":500`)
	})
}
