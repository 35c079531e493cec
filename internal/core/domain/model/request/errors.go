package request

// Code is the stable numeric identifier of a lifecycle error. The values are
// part of the public contract and are reported to API clients.
type Code int

const (
	CodeAlreadyInitialized      Code = 0
	CodeNotInitialized          Code = 1
	CodeUnauthorized            Code = 2
	CodeInvalidInput            Code = 12
	CodeInvalidBloodType        Code = 13
	CodeInvalidStatus           Code = 14
	CodeInvalidTimestamp        Code = 15
	CodeInvalidQuantity         Code = 16
	CodeNotAuthorizedHospital   Code = 32
	CodeNotAuthorizedBloodBank  Code = 33
	CodeRequestNotFound         Code = 40
	CodeInvalidStatusTransition Code = 41
)

// Error is a lifecycle failure with a stable code. Errors of this type are
// sentinels: compare with errors.Is, extract the code with errors.As.
type Error struct {
	code    Code
	message string
}

func newError(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func (e *Error) Error() string {
	return e.message
}

// Code returns the stable numeric code of the error.
func (e *Error) Code() Code {
	return e.code
}

var (
	ErrAlreadyInitialized      = newError(CodeAlreadyInitialized, "already initialized")
	ErrNotInitialized          = newError(CodeNotInitialized, "not initialized")
	ErrUnauthorized            = newError(CodeUnauthorized, "caller is not authenticated")
	ErrInvalidInput            = newError(CodeInvalidInput, "invalid input")
	ErrInvalidBloodType        = newError(CodeInvalidBloodType, "invalid blood type")
	ErrInvalidStatus           = newError(CodeInvalidStatus, "invalid status")
	ErrInvalidTimestamp        = newError(CodeInvalidTimestamp, "invalid timestamp")
	ErrInvalidQuantity         = newError(CodeInvalidQuantity, "invalid quantity")
	ErrNotAuthorizedHospital   = newError(CodeNotAuthorizedHospital, "caller is not an authorized hospital")
	ErrNotAuthorizedBloodBank  = newError(CodeNotAuthorizedBloodBank, "caller is not an authorized blood bank")
	ErrRequestNotFound         = newError(CodeRequestNotFound, "request not found")
	ErrInvalidStatusTransition = newError(CodeInvalidStatusTransition, "invalid status transition")
)
