package loan

import "errors"

// Every failure is a rejected operation, never a crash; callers retry if they
// want to. Sentinels are grouped by kind so the transport layer can map them
// to status codes with errors.Is.
var (
	// validation
	ErrInvalidAmount       = errors.New("principal must be positive")
	ErrInvalidInterestRate = errors.New("interest rate must be between 0 and 10000 bps exclusive")
	ErrInvalidDuration     = errors.New("duration must be positive")
	ErrCollateralMismatch  = errors.New("supplied collateral does not match requested amount")
	ErrAmountMismatch      = errors.New("supplied principal does not match requested amount")

	// authorization
	ErrNotBorrower = errors.New("caller is not the recorded borrower")
	ErrNotLender   = errors.New("caller is not the recorded lender")

	// state
	ErrAlreadyFunded         = errors.New("loan is not in requested state")
	ErrLoanNotActive         = errors.New("loan is not funded/active")
	ErrDeadlinePassed        = errors.New("repayment window has closed")
	ErrRepaymentExceedsOwed  = errors.New("repayment exceeds remaining amount owed")
	ErrGracePeriodNotExpired = errors.New("grace period has not expired")
	ErrConflict              = errors.New("loan changed concurrently, retry")

	ErrNotFound = errors.New("loan not found")
)

// Kind buckets domain errors for callers that care about the category rather
// than the exact sentinel (HTTP mapping, metrics labels).
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindState         Kind = "state"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindTransfer      Kind = "transfer"
	KindInternal      Kind = "internal"
)

func Classify(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidInterestRate),
		errors.Is(err, ErrInvalidDuration),
		errors.Is(err, ErrCollateralMismatch),
		errors.Is(err, ErrAmountMismatch):
		return KindValidation
	case errors.Is(err, ErrNotBorrower), errors.Is(err, ErrNotLender):
		return KindAuthorization
	case errors.Is(err, ErrAlreadyFunded),
		errors.Is(err, ErrLoanNotActive),
		errors.Is(err, ErrDeadlinePassed),
		errors.Is(err, ErrRepaymentExceedsOwed),
		errors.Is(err, ErrGracePeriodNotExpired):
		return KindState
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
