package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vgsales/internal/charts"
	apperr "vgsales/internal/errors"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code      apperr.Code `json:"code"`
	Message   string      `json:"message"`
	Details   any         `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// toResponse maps err to a status code and body.
func toResponse(err error) (int, ErrorResponse) {
	var de *apperr.Error
	if apperr.As(err, &de) {
		return de.HTTPStatus(), ErrorResponse{Code: de.Code, Message: de.Message, Details: de.Details}
	}

	if apperr.Is(err, charts.ErrNoData) {
		return http.StatusNotFound, ErrorResponse{Code: apperr.CodeNoData, Message: "nothing to draw"}
	}

	var he *echo.HTTPError
	var be *echo.BindingError
	if apperr.As(err, &be) {
		he = be.HTTPError
	}
	if he != nil || apperr.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, ErrorResponse{Code: codeForStatus(he.Code), Message: msg}
	}

	return http.StatusInternalServerError, ErrorResponse{Code: apperr.CodeInternal, Message: "internal server error"}
}

func codeForStatus(status int) apperr.Code {
	if status >= http.StatusInternalServerError {
		return apperr.CodeInternal
	}
	// 404 -> NOT_FOUND, 429 -> TOO_MANY_REQUESTS
	return apperr.Code(strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_")))
}

func newErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toResponse(err)
		body.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", body.RequestID,
				"error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}
