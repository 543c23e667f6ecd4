package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidCredentials
	ErrPasswordMismatch
	ErrWeakPassword
	ErrMissingField
	ErrDuplicateValue
	ErrUploadTooLarge
	ErrUploadRejected
	ErrInvalidResetToken
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrInvalidCredentials: "unable to log in with provided credentials",
	ErrPasswordMismatch:   "password fields didn't match",
	ErrWeakPassword:       "password does not meet the strength policy",
	ErrMissingField:       "required field is missing",
	ErrDuplicateValue:     "value already exists",
	ErrUploadTooLarge:     "the uploaded file exceeds the maximum allowed size",
	ErrUploadRejected:     "the uploaded file could not be processed",
	ErrInvalidResetToken:  "invalid or expired reset token",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusBadRequest,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusBadRequest,
	ErrPasswordMismatch:   http.StatusBadRequest,
	ErrWeakPassword:       http.StatusBadRequest,
	ErrMissingField:       http.StatusBadRequest,
	ErrDuplicateValue:     http.StatusBadRequest,
	ErrUploadTooLarge:     http.StatusBadRequest,
	ErrUploadRejected:     http.StatusBadRequest,
	ErrInvalidResetToken:  http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrInvalidCredentials: "0005",
	ErrPasswordMismatch:   "0006",
	ErrWeakPassword:       "0007",
	ErrMissingField:       "0008",
	ErrDuplicateValue:     "0009",
	ErrUploadTooLarge:     "0010",
	ErrUploadRejected:     "0011",
	ErrInvalidResetToken:  "0012",
}
