package types

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	NonQuoteFeeDetected  ErrorCode = "NON_QUOTE_FEE_DETECTED"
	DistributionTooEarly ErrorCode = "DISTRIBUTION_TOO_EARLY"
	CursorMismatch       ErrorCode = "CURSOR_MISMATCH"
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	ArithmeticOverflow   ErrorCode = "ARITHMETIC_OVERFLOW"
	InvalidPolicy        ErrorCode = "INVALID_POLICY"
	InvalidPoolConfig    ErrorCode = "INVALID_POOL_CONFIG"
	InvalidInvestorData  ErrorCode = "INVALID_INVESTOR_DATA"
	PositionNotActive    ErrorCode = "POSITION_NOT_ACTIVE"
	NotFound             ErrorCode = "NOT_FOUND"
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

func (c ErrorCode) String() string {
	return string(c)
}

// Error is the error type returned by every crank operation. Callers branch on Code.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code ErrorCode, err error) *Error {
	return &Error{
		Code: code,
		Err:  err,
	}
}

func NewErrorWithMsg(code ErrorCode, msg string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(msg, args...),
	}
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		Code:    InternalServiceError,
		Message: "internal service error",
		Err:     err,
	}
}

// ErrorCodeOf returns the code of the first *Error in err's chain,
// or InternalServiceError when there is none.
func ErrorCodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalServiceError
}

func IsErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}
