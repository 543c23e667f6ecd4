package transport

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode"

	gpvalidator "github.com/go-playground/validator/v10"

	"github.com/findahub/accounts/constant"
	"github.com/findahub/accounts/utils/errors"
)

// Response is the uniform envelope for all endpoints.
type Response struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, &Response{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, &Response{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case errors.FieldError:
		writeJSON(w, e.ErrorHTTPCode(), &Response{
			Code:    e.ErrorCode(),
			Message: e.Error(),
			Errors:  map[string]string{e.Field(): e.Error()},
		})
	case errors.CustomError:
		writeJSON(w, e.ErrorHTTPCode(), &Response{
			Code:    e.ErrorCode(),
			Message: e.Error(),
		})
	default:
		internal := errors.SetCustomError(constant.ErrInternal)
		writeJSON(w, internal.ErrorHTTPCode(), &Response{
			Code:    internal.ErrorCode(),
			Message: internal.Error(),
		})
	}
}

// writeValidationError renders go-playground validation failures as a
// field -> message mapping keyed by the JSON field name.
func writeValidationError(w http.ResponseWriter, err error) {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	fieldErrors := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fieldErrors[toSnake(fe.Field())] = "invalid value for " + fe.Tag() + " rule"
	}

	writeJSON(w, constant.ErrorTypeHTTPCode[constant.ErrInvalidRequest], &Response{
		Code:    constant.ErrorTypeCode[constant.ErrInvalidRequest],
		Message: constant.ErrorTypeMessage[constant.ErrInvalidRequest],
		Errors:  fieldErrors,
	})
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
