package http

import (
	"errors"
	"net/http"
	"strings"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/params"
	"peerlend-backend/internal/domain/transfer"
	"peerlend-backend/internal/usecase/admin"
)

// statusFor maps domain failures to HTTP status codes. Transfer failures get
// 422: the request was well-formed and the loan state allowed it, the money
// just did not move.
func statusFor(err error) int {
	switch {
	case errors.Is(err, transfer.ErrTransferFailed),
		errors.Is(err, transfer.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, admin.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, params.ErrInvalidFeeRate):
		return http.StatusBadRequest
	}
	switch loan.Classify(err) {
	case loan.KindValidation:
		return http.StatusBadRequest
	case loan.KindAuthorization:
		return http.StatusForbidden
	case loan.KindState, loan.KindConflict:
		return http.StatusConflict
	case loan.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
