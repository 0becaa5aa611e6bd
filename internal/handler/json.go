package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field errors are reported under their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Amounts are compared as numbers so gte/lte tags work on decimals.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.InexactFloat64()
	}, decimal.Decimal{})

	return v
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads a single JSON object into dst and validates it.
// Malformed bodies are EINVALID; oversized bodies are ETOOLARGE.
func DecodeJSON(r *http.Request, op string, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &tooLarge):
			return domain.Errorf(domain.ETOOLARGE, op, "Request body must not exceed %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return domain.Invalid(op, "Request body must not be empty")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return domain.Invalid(op, "Request body contains malformed JSON")
		case errors.As(err, &typeErr):
			return domain.NewValidationError(op, typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type))
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return domain.NewValidationError(op, field, "unknown field")
		default:
			return domain.Invalid(op, "Request body could not be decoded")
		}
	}
	if dec.More() {
		return domain.Invalid(op, "Request body must contain a single JSON object")
	}

	return Validate(op, dst)
}

// Validate checks the struct's validate tags and converts failures into a
// domain.ValidationError keyed by JSON field path.
func Validate(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Internal(err, op, "validation failed")
	}

	var out error
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		msg := describe(fe)
		if out == nil {
			out = domain.NewValidationError(op, field, msg)
		} else {
			out = domain.AddFieldError(out, field, msg)
		}
	}
	return out
}

// fieldPath drops the root struct name: "createOrderRequest.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(namespace string) string {
	_, rest, ok := strings.Cut(namespace, ".")
	if !ok {
		return namespace
	}
	return rest
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "alphanum":
		return "must contain only letters and digits"
	case "datetime":
		return fmt.Sprintf("must be a date in the form %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
