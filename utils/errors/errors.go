package errors

import "github.com/findahub/accounts/constant"

type CustomError struct {
	errType constant.ErrorType
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// FieldError is a CustomError scoped to a single input field, so handlers
// can render a field -> message mapping.
type FieldError struct {
	CustomError
	field string
}

func (f FieldError) Field() string {
	return f.field
}

// Unwrap lets errors.As match the embedded CustomError.
func (f FieldError) Unwrap() error {
	return f.CustomError
}

func SetFieldError(errorType constant.ErrorType, field string) FieldError {
	return FieldError{
		CustomError: CustomError{errType: errorType},
		field:       field,
	}
}

// FieldMismatch reports two fields that were required to match.
func FieldMismatch(field string) FieldError {
	return SetFieldError(constant.ErrPasswordMismatch, field)
}

// MissingRequiredField reports a conditionally required field left empty.
func MissingRequiredField(field string) FieldError {
	return SetFieldError(constant.ErrMissingField, field)
}

// DuplicateValue reports a unique-field collision.
func DuplicateValue(field string) FieldError {
	return SetFieldError(constant.ErrDuplicateValue, field)
}
