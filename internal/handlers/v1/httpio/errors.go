// Package httpio holds what the v1 handlers share: request parsing, the
// mapping of domain errors to HTTP statuses and the JSON models.
package httpio

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// ServiceError converts an error from the service layer into a huma error.
// failure is the message used when err is not a domain rejection.
func ServiceError(failure string, err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidTransactionType),
		errors.Is(err, ledger.ErrGoalAccountMismatch),
		errors.Is(err, ledger.ErrInvalidName),
		errors.Is(err, ledger.ErrInvalidPeriod):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotOwner):
		return huma.NewError(http.StatusForbidden, ledger.ErrNotOwner.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return huma.NewError(http.StatusNotFound, ledger.ErrNotFound.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return huma.NewError(http.StatusConflict, ledger.ErrInsufficientFunds.Error())
	case errors.Is(err, ledger.ErrInsufficientGoalFunds):
		return huma.NewError(http.StatusConflict, ledger.ErrInsufficientGoalFunds.Error())
	}
	return huma.NewError(http.StatusInternalServerError, failure, err)
}
