package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/pkg/response"
)

// fail maps a service error onto the HTTP envelope. Unknown errors become
// an opaque 500 so internals never leak.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	response.Fail[any](c, status, msg, nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrNotPermitted),
		errors.Is(err, entity.ErrAdminAccountNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrAccountNotFound),
		errors.Is(err, entity.ErrAccountTypeNotFound),
		errors.Is(err, entity.ErrAddressNotFound),
		errors.Is(err, entity.ErrTransactionNotFound),
		errors.Is(err, entity.ErrTestRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateEmail),
		errors.Is(err, entity.ErrDuplicateAccountForUser),
		errors.Is(err, entity.ErrDuplicateAccountNumber),
		errors.Is(err, entity.ErrDuplicateAddressForUser),
		errors.Is(err, entity.ErrAccountTypeInUse):
		return http.StatusConflict
	case errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrBelowMinimumAmount),
		errors.Is(err, entity.ErrExceedsAccountLimit),
		errors.Is(err, entity.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
