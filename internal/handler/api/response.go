package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
)

// Envelope is the success response body.
type Envelope struct {
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// ErrorBody is the error response body.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respond writes the success envelope.
func respond(c echo.Context, status int, msg string, data interface{}) error {
	return c.JSON(status, Envelope{Msg: msg, Data: data})
}

// ErrorCodeToHTTPStatus maps application error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler builds the echo error handler. Domain errors map to
// their status and safe message, validation errors carry field details,
// everything else becomes an opaque 500.
func NewErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var body ErrorBody
		status := http.StatusInternalServerError

		switch {
		case domain.IsValidationError(err):
			status = http.StatusBadRequest
			body.Error = ErrorDetail{
				Code:    domain.EINVALID,
				Message: "Validation failed",
				Fields:  domain.GetValidationFields(err),
			}
		default:
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
				msg := http.StatusText(status)
				if s, ok := he.Message.(string); ok {
					msg = s
				}
				body.Error = ErrorDetail{Code: codeForStatus(status), Message: msg}
				break
			}

			code := domain.ErrorCode(err)
			status = ErrorCodeToHTTPStatus(code)
			body.Error = ErrorDetail{
				Code:    code,
				Message: domain.ErrorMessage(err),
			}
		}

		if status >= 500 {
			logger.Error().Err(err).
				Str("path", c.Request().URL.Path).
				Str("op", domain.ErrorOp(err)).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.EINVALID
	case http.StatusUnauthorized:
		return domain.EUNAUTHORIZED
	case http.StatusForbidden:
		return domain.EFORBIDDEN
	case http.StatusNotFound:
		return domain.ENOTFOUND
	case http.StatusConflict:
		return domain.ECONFLICT
	default:
		return domain.EINTERNAL
	}
}
