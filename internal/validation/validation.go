// Package validation holds the input predicates shared by the services and
// the composite payload validators built on top of them.
package validation

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)

// IsValidID reports whether x coerces to a positive integer.
func IsValidID(x any) bool {
	_, ok := ToID(x)
	return ok
}

// ToID coerces x to a positive integer id.
func ToID(x any) (int64, bool) {
	switch v := x.(type) {
	case int:
		return int64(v), v > 0
	case int32:
		return int64(v), v > 0
	case int64:
		return v, v > 0
	case uint:
		return int64(v), v > 0 && uint64(v) <= math.MaxInt64
	case uint64:
		return int64(v), v > 0 && v <= math.MaxInt64
	case float64:
		if v <= 0 || v != math.Trunc(v) || v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		return ToID(string(v))
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	case *int64:
		if v == nil {
			return 0, false
		}
		return *v, *v > 0
	}
	return 0, false
}

// IsValidEmail matches local@domain.tld with an ASCII alphabetic TLD of two or more letters.
func IsValidEmail(x any) bool {
	s, ok := x.(string)
	return ok && emailRe.MatchString(s)
}

// IsStrongPassword requires at least 8 characters with an upper, a lower and a
// digit, and no more than MaxPasswordBytes bytes.
func IsStrongPassword(x any) bool {
	s, ok := x.(string)
	if !ok || len(s) < 8 || len(s) > MaxPasswordBytes {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

// IsPositiveNumber reports whether x is a finite number >= 0.
func IsPositiveNumber(x any) bool {
	f, ok := toFloat(x)
	return ok && f >= 0
}

// IsAmountInRange reports whether amount is > 0, <= max and has no more than
// decimals fractional digits.
func IsAmountInRange(amount any, max float64, decimals int32) bool {
	f, ok := toFloat(amount)
	return ok && f > 0 && withinLimits(f, max, decimals)
}

// IsBalanceInRange is IsAmountInRange allowing zero, for running balances.
func IsBalanceInRange(amount any, max float64, decimals int32) bool {
	f, ok := toFloat(amount)
	return ok && f >= 0 && withinLimits(f, max, decimals)
}

func withinLimits(f, max float64, decimals int32) bool {
	if f > max {
		return false
	}
	d := decimal.NewFromFloat(f)
	return d.Equal(d.Round(decimals))
}

// IsValidDate accepts a non-blank YYYY-MM-DD or RFC 3339 string, or a non-zero time.Time.
func IsValidDate(x any) bool {
	_, ok := ParseDate(x)
	return ok
}

// ParseDate is IsValidDate returning the parsed value.
func ParseDate(x any) (time.Time, bool) {
	switch v := x.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *string:
		if v == nil {
			return time.Time{}, false
		}
		return ParseDate(*v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(DateLayout, s); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValidMonth accepts YYYY-MM.
func IsValidMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}

// IsNonEmptyString reports whether x is a string with non-whitespace content.
func IsNonEmptyString(x any) bool {
	if p, ok := x.(*string); ok {
		if p == nil {
			return false
		}
		x = *p
	}
	s, ok := x.(string)
	return ok && strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// CheckRequiredFields returns the first field in fields whose value in obj is
// missing or falsy (nil, nil pointer, zero value).
func CheckRequiredFields(obj map[string]any, fields ...string) (string, bool) {
	for _, f := range fields {
		if isFalsy(obj[f]) {
			return f, true
		}
	}
	return "", false
}

func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Float64 || rv.Kind() == reflect.Float32 {
		if math.IsNaN(rv.Float()) {
			return true
		}
	}
	return rv.IsZero()
}

func toFloat(x any) (float64, bool) {
	var f float64
	switch v := x.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case *float64:
		if v == nil {
			return 0, false
		}
		f = *v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
