package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{entity.ErrInvalidCredentials, http.StatusUnauthorized},
		{entity.ErrNotPermitted, http.StatusForbidden},
		{entity.ErrAdminAccountNotAllowed, http.StatusForbidden},
		{entity.ErrAccountNotFound, http.StatusNotFound},
		{entity.ErrDuplicateEmail, http.StatusConflict},
		{entity.ErrDuplicateAccountForUser, http.StatusConflict},
		{entity.ErrDuplicateAddressForUser, http.StatusConflict},
		{entity.ErrDuplicateAccountNumber, http.StatusConflict},
		{entity.ErrAccountTypeInUse, http.StatusConflict},
		{entity.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", entity.ErrBelowMinimumAmount), http.StatusUnprocessableEntity},
		{errors.New("pool exhausted"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
