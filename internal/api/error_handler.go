package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Answers a domain.StatusError with its own code, message and details.
//   - Folds echo's route misses (404 and 405) into "unknown endpoint".
//   - Logs unexpected errors and answers 500 with their message, or a generic
//     message when they carry none.
//   - Renders a consistent JSON envelope: {"message": "<message>", ...details}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, map[string]any) {
	var se *domain.StatusError
	if errors.As(err, &se) {
		body := make(map[string]any, len(se.Details)+1)
		for k, v := range se.Details {
			body[k] = v
		}
		body["message"] = se.Message
		return se.Code, body
	}

	// Echo's own errors (bind failures, router misses, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return http.StatusNotFound, message(domain.ErrUnknownEndpoint.Message)
		}
		if he.Code < http.StatusInternalServerError {
			return he.Code, message(fmt.Sprintf("%v", he.Message))
		}
	}

	// Unexpected error: log it and answer 500 with its message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	msg := err.Error()
	if msg == "" {
		msg = "internal server error"
	}
	return http.StatusInternalServerError, message(msg)
}

func message(msg string) map[string]any {
	return map[string]any{"message": msg}
}
