package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cupo-backend/pkg/apperr"
)

// Codes that are policy failures but surface as plain 400s, matching the
// taxonomy's split between "not allowed for you" and "not a valid request".
var badRequestPolicyCodes = map[string]bool{
	"TERM_NOT_ALLOWED": true,
	"LIMIT_EXCEEDED":   true,
}

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindOverpayment:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindPolicy:
		if badRequestPolicyCodes[apperr.CodeOf(err)] {
			return http.StatusBadRequest
		}
		return http.StatusForbidden
	case apperr.KindState, apperr.KindConcurrency:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail renders any engine error as the standard error payload.
func fail(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(status, ErrorResponse{Error: msg, Code: apperr.CodeOf(err)})
}
