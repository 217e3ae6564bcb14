package domain

import (
	"errors"
	"net/http"
)

// Error codes carried by AppError.
const (
	CodeNotFound       = 1
	CodeAlreadyExists  = 2
	CodeValidation     = 3
	CodeInternal       = 4
	CodeInvalidRequest = 5
)

// AppError is a categorized business error: a stable code, a message safe
// to surface to clients, and an optional underlying cause.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Sentinel errors, one per code.
//
// Categorize errors with the Is* helpers rather than errors.Is: the
// helpers compare codes via errors.As, so a freshly built or wrapped
// *AppError with the right code matches too, while errors.Is would only
// match these exact pointers.
var (
	ErrNotFound      = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists = &AppError{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation    = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrInternal      = &AppError{Code: CodeInternal, Message: "internal error"}

	// ErrInvalidRequest is the only error broker operations propagate: the
	// request object was nil or structurally unusable (for example a missing
	// UID). Every other failure is folded into a Success=false envelope.
	ErrInvalidRequest = &AppError{Code: CodeInvalidRequest, Message: "invalid request"}
)

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsAlreadyExists reports whether err carries CodeAlreadyExists.
func IsAlreadyExists(err error) bool { return hasCode(err, CodeAlreadyExists) }

// IsValidation reports whether err carries CodeValidation.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsInternal reports whether err carries CodeInternal.
func IsInternal(err error) bool { return hasCode(err, CodeInternal) }

// IsInvalidRequest reports whether err carries CodeInvalidRequest.
func IsInvalidRequest(err error) bool { return hasCode(err, CodeInvalidRequest) }

func hasCode(err error, code int) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

var httpStatusByCode = map[int]int{
	CodeNotFound:       http.StatusNotFound,
	CodeAlreadyExists:  http.StatusConflict,
	CodeValidation:     http.StatusBadRequest,
	CodeInvalidRequest: http.StatusBadRequest,
	CodeInternal:       http.StatusInternalServerError,
}

// HTTPStatusCode maps an error's code to its HTTP status. Anything that is
// not a recognized *AppError maps to 500.
func HTTPStatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		if status, ok := httpStatusByCode[appErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
