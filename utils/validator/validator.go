package validatorx

import (
	"strings"
	"sync"
	"unicode"

	gpvalidator "github.com/go-playground/validator/v10"

	"github.com/findahub/accounts/constant"
	"github.com/findahub/accounts/utils/errors"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

const minPasswordLen = 8

// commonPasswords is a short deny-list of passwords seen constantly in
// credential dumps. Checked lowercased.
var commonPasswords = map[string]struct{}{
	"password":   {},
	"password1":  {},
	"qwerty123":  {},
	"iloveyou1":  {},
	"letmein123": {},
	"admin12345": {},
}

// ValidatePassword enforces the platform password strength policy:
// minimum length, not entirely numeric, not a known common password.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return errors.SetFieldError(constant.ErrWeakPassword, "password")
	}

	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return errors.SetFieldError(constant.ErrWeakPassword, "password")
	}

	if _, found := commonPasswords[strings.ToLower(password)]; found {
		return errors.SetFieldError(constant.ErrWeakPassword, "password")
	}

	return nil
}
