package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/xdbf/internal/catalog"
	"github.com/samcharles93/xdbf/pkg/xdbf"
)

// rawBody is written as-is instead of being encoded as JSON.
type rawBody struct {
	contentType string
	data        []byte
}

func writeBody(c *echo.Context, status int, body any) error {
	w := c.Response()
	if raw, ok := body.(rawBody); ok {
		w.Header().Set(echo.HeaderContentType, raw.contentType)
		w.WriteHeader(status)
		_, err := w.Write(raw.data)
		return err
	}
	return writeJSON(c, status, body)
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}

func errorBody(errType, msg string) ErrorResponse {
	return ErrorResponse{Error: ResponseError{Message: msg, Type: errType}}
}

// classify maps a handler error to a status code and error envelope.
func classify(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorBody("invalid_request_error", err.Error())
	case errors.Is(err, catalog.ErrTitleNotFound), errors.Is(err, xdbf.ErrNotFound):
		return http.StatusNotFound, errorBody("not_found_error", err.Error())
	default:
		return http.StatusInternalServerError, errorBody("server_error", err.Error())
	}
}
