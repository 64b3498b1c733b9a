package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lop-gin/nexus-backoffice/internal/domain"
	apphttp "github.com/lop-gin/nexus-backoffice/internal/interfaces/http"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrRoleLocked, http.StatusForbidden, "ROLE_LOCKED"},
		{domain.ErrInvitationExpired, http.StatusForbidden, "INVITATION_EXPIRED"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{fmt.Errorf("%w: rol renombrado", domain.ErrPartialFailure), http.StatusInternalServerError, "PARTIAL_FAILURE"},
		{fmt.Errorf("roles: obtener: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := apphttp.ErrorStatus(tc.err)
		assert.Equal(t, tc.status, status, "status para %v", tc.err)
		assert.Equal(t, tc.code, code, "código para %v", tc.err)
	}
}
