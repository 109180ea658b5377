package errors

import "fmt"

type ErrorCode string

const (
	// Generic codes
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	// Slot engine precondition codes
	ErrNoCapacity             ErrorCode = "NO_CAPACITY"
	ErrAlreadyAssigned        ErrorCode = "ALREADY_ASSIGNED"
	ErrAlreadyWaitlisted      ErrorCode = "ALREADY_WAITLISTED"
	ErrNotAssigned            ErrorCode = "NOT_ASSIGNED"
	ErrInsufficientApplicants ErrorCode = "INSUFFICIENT_APPLICANTS"
	ErrInvalidTransition      ErrorCode = "INVALID_TRANSITION"
	ErrInvalidWindow          ErrorCode = "INVALID_WINDOW"
	ErrConflict               ErrorCode = "CONFLICT"

	// Raised when a stored aggregate fails its own consistency check; the
	// aggregate refuses further mutation until reconciled by an operator.
	ErrInconsistentState ErrorCode = "INCONSISTENT_STATE"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if ae, ok := err.(*AppError); ok {
		return ae.Code == code
	}
	return false
}
