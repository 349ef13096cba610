package result

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// MissingField reports the first required field absent from a payload.
func MissingField(field string) *Error {
	return &Error{Message: fmt.Sprintf("Missing required field: %s", field), Code: http.StatusBadRequest}
}

func NotFound(entity string) *Error {
	return &Error{Message: fmt.Sprintf("%s not found", capitalize(entity)), Code: http.StatusNotFound}
}

func AlreadyExists(entity string) *Error {
	return &Error{Message: fmt.Sprintf("%s already exists", capitalize(entity)), Code: http.StatusConflict}
}

// InUse is returned when a delete would orphan dependent rows.
func InUse(entity string) *Error {
	return &Error{Message: fmt.Sprintf("%s is in use and cannot be deleted", capitalize(entity)), Code: http.StatusConflict}
}

func InvalidID(entity string) *Error {
	if entity == "" {
		return &Error{Message: "Invalid ID", Code: http.StatusBadRequest}
	}
	return &Error{Message: fmt.Sprintf("Invalid %s ID", strings.ToLower(entity)), Code: http.StatusBadRequest}
}

func InvalidEmail() *Error {
	return &Error{Message: "Invalid email format", Code: http.StatusBadRequest}
}

func WeakPassword() *Error {
	return &Error{
		Message: "Password must be at least 8 characters and at most 72 bytes, and include an uppercase letter, a lowercase letter and a digit",
		Code:    http.StatusBadRequest,
	}
}

func AmountMustBePositive(field string) *Error {
	return &Error{Message: fmt.Sprintf("%s must be a positive number", field), Code: http.StatusBadRequest}
}

func BalanceOutOfRange(field string, max float64, decimals int32) *Error {
	return &Error{
		Message: fmt.Sprintf("%s must be at most %s and have at most %d decimal places",
			field, strconv.FormatFloat(max, 'f', -1, 64), decimals),
		Code: http.StatusBadRequest,
	}
}

func AmountOutOfRange(field string, max float64, decimals int32) *Error {
	return &Error{
		Message: fmt.Sprintf("%s must be greater than 0, at most %s and have at most %d decimal places",
			field, strconv.FormatFloat(max, 'f', -1, 64), decimals),
		Code: http.StatusBadRequest,
	}
}

func InvalidDate(field string) *Error {
	return &Error{Message: fmt.Sprintf("Invalid date for field: %s", field), Code: http.StatusBadRequest}
}

func InvalidType(allowed ...string) *Error {
	return &Error{Message: fmt.Sprintf("Type must be one of: %s", strings.Join(allowed, ", ")), Code: http.StatusBadRequest}
}

func InvalidBody() *Error {
	return &Error{Message: "Invalid request body", Code: http.StatusBadRequest}
}

func ThresholdRange() *Error {
	return &Error{Message: "Threshold must be between 0 and 100", Code: http.StatusBadRequest}
}

func InvalidCredentials() *Error {
	return &Error{Message: "Invalid email or password", Code: http.StatusUnauthorized}
}

func Forbidden() *Error {
	return &Error{Message: "Forbidden", Code: http.StatusForbidden}
}

func InternalError() *Error {
	return &Error{Message: "Internal server error", Code: http.StatusInternalServerError}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
