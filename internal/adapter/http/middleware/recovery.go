package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotel-site/room-filter/internal/adapter/http/response"
	"github.com/hotel-site/room-filter/internal/infrastructure/logger"
)

// Recover returns middleware that turns a panic in the handler chain into a
// logged 500 response. A panicking filter predicate surfaces here.
func Recover(log zerolog.Logger, printStack bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				reqLog := logger.WithRequestID(log, GetRequestID(c))
				event := reqLog.Error().
					Str("panic", fmt.Sprint(r))
				if printStack {
					event = event.Str("stack", string(debug.Stack()))
				}
				event.Msg("Panic recovered")

				if !c.Response().Committed {
					err = response.InternalServerError(c)
				}
			}()

			return next(c)
		}
	}
}

// Setup registers all middleware on the Echo instance in order:
// request ID first so every log line carries it, then the request logger,
// then recovery closest to the handlers.
func Setup(e *echo.Echo, log zerolog.Logger, printStack bool) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log, printStack))
}
