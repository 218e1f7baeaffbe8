package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validate checks a decoded JSON object against the schema.
//
// Numbers are expected as json.Number (decode with UseNumber) but float64 and
// Go integer types are accepted too. Fields outside the schema are rejected so
// that a client cannot smuggle server-populated values into a write.
func (s *Schema) Validate(payload map[string]any) error {
	var errs []*FieldError

	for _, f := range s.fields {
		value, present := payload[f.Name]
		if !present {
			if f.Required() {
				errs = append(errs, &FieldError{Field: f.Name, Err: ErrMissingField})
			}
			continue
		}
		if value == nil {
			if !f.Nullable {
				errs = append(errs, &FieldError{Field: f.Name, Err: ErrNullValue})
			}
			continue
		}
		if fe := checkValue(f, value); fe != nil {
			errs = append(errs, fe)
		}
	}

	unknown := make([]string, 0)
	for key := range payload {
		if !s.Has(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, &FieldError{Field: key, Err: ErrUnknownField})
	}

	if len(errs) > 0 {
		return &ValidationError{Schema: s.name, Errors: errs}
	}
	return nil
}

func checkValue(f Field, value any) *FieldError {
	switch f.Kind {
	case KindString, KindText, KindEnum:
		str, ok := value.(string)
		if !ok {
			return wrongType(f, value)
		}
		if err := fieldValidator.Var(str, f.valueTag()); err != nil {
			return constraintError(f, str, err)
		}

	case KindBool:
		if _, ok := value.(bool); !ok {
			return wrongType(f, value)
		}

	case KindInt, KindReference:
		if _, ok := asInt64(value); !ok {
			return wrongType(f, value)
		}

	case KindDecimal:
		d, ok := asDecimal(value)
		if !ok {
			return wrongType(f, value)
		}
		if !fitsPrecision(d, f.Digits, f.Places) {
			return &FieldError{Field: f.Name, Err: ErrPrecision, Detail: fmt.Sprintf("decimal(%d,%d)", f.Digits, f.Places)}
		}

	case KindDate:
		str, ok := value.(string)
		if !ok {
			return wrongType(f, value)
		}
		if _, err := civil.ParseDate(str); err != nil {
			return &FieldError{Field: f.Name, Err: ErrInvalidFormat, Detail: "expected YYYY-MM-DD"}
		}

	case KindTimestamp:
		str, ok := value.(string)
		if !ok {
			return wrongType(f, value)
		}
		if _, err := time.Parse(time.RFC3339Nano, str); err != nil {
			return &FieldError{Field: f.Name, Err: ErrInvalidFormat, Detail: "expected RFC 3339"}
		}
	}
	return nil
}

// fieldValidator runs the catalogue's length and enumeration rules as tags.
var fieldValidator = validator.New()

// Tag parameters cannot carry raw commas or pipes.
var tagEscaper = strings.NewReplacer(",", "0x2C", "|", "0x7C")

// valueTag renders the string constraints of f, e.g. "max=20" or
// "max=100,oneof='Cars' 'Trailers'".
func (f Field) valueTag() string {
	tags := make([]string, 0, 2)
	if f.MaxLength > 0 {
		tags = append(tags, "max="+strconv.Itoa(f.MaxLength))
	}
	if f.Kind == KindEnum {
		quoted := make([]string, len(f.Enum))
		for i, v := range f.Enum {
			quoted[i] = "'" + tagEscaper.Replace(v) + "'"
		}
		tags = append(tags, "oneof="+strings.Join(quoted, " "))
	}
	return strings.Join(tags, ",")
}

func constraintError(f Field, value string, err error) *FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "max":
			return &FieldError{Field: f.Name, Err: ErrTooLong, Detail: fmt.Sprintf("max %d characters", f.MaxLength)}
		case "oneof":
			return &FieldError{Field: f.Name, Err: ErrNotAllowed, Detail: strconv.Quote(value)}
		}
	}
	return &FieldError{Field: f.Name, Err: ErrInvalidFormat, Detail: err.Error()}
}

func wrongType(f Field, value any) *FieldError {
	return &FieldError{Field: f.Name, Err: ErrWrongType, Detail: fmt.Sprintf("expected %s, got %T", f.Kind, value)}
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// asDecimal accepts JSON numbers and numeric strings, the two ways clients send prices.
func asDecimal(value any) (decimal.Decimal, bool) {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := value.(type) {
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case string:
		d, err = decimal.NewFromString(v)
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	default:
		return decimal.Decimal{}, false
	}
	return d, err == nil
}

// fitsPrecision reports whether d has at most places fractional digits and
// at most digits significant digits overall. It works on the coefficient's
// digit string so that exponents like 1e10000000 are never expanded.
func fitsPrecision(d decimal.Decimal, digits, places int) bool {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return true
	}
	str := strings.TrimLeft(coef.String(), "-")
	trimmed := strings.TrimRight(str, "0")

	exp := int64(d.Exponent()) + int64(len(str)-len(trimmed))
	if exp < -int64(places) {
		return false
	}
	return int64(len(trimmed))+exp <= int64(digits-places)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
