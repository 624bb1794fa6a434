package ledger

import "errors"

// Rejections returned by the mutation paths. Each one is detected before any
// write, so a request that fails with one of these leaves no trace.
var (
	ErrInvalidAmount          = errors.New("amount must be a positive value with at most two decimal places")
	ErrInvalidTransactionType = errors.New("transaction type is not supported for this operation")
	ErrNotOwner               = errors.New("this record does not belong to you")
	ErrNotFound               = errors.New("record not found")
	ErrInsufficientFunds      = errors.New("insufficient funds in account")
	ErrInsufficientGoalFunds  = errors.New("insufficient funds in goal")
	ErrGoalAccountMismatch    = errors.New("goal is funded from a different account")
	ErrInvalidName            = errors.New("name must not be empty")
	ErrInvalidPeriod          = errors.New("period must end on or after its start")
)

// IsRejection reports whether err is one of the request-scoped rejections
// above, as opposed to a storage or infrastructure failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidTransactionType) ||
		errors.Is(err, ErrNotOwner) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInsufficientGoalFunds) ||
		errors.Is(err, ErrGoalAccountMismatch) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidPeriod)
}
