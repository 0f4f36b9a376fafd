package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError represents a single field's validation error.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// JSONTagName makes validator report fields by their json names.
func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// FieldErrors converts validator errors into FieldErrors keyed by JSON path
// (e.g. "stages[2].emotion_score"). It returns nil for any other error.
func FieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fieldPath(fe.Namespace()), Msg: describe(fe)})
	}
	return out
}

func fieldPath(ns string) string {
	// Namespace starts with the struct type name
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "max length " + fe.Param()
		}
		return "must be at most " + fe.Param()
	case "len":
		return "must contain exactly " + fe.Param() + " items"
	case "uuid":
		return "must be a UUID"
	}
	return "invalid (" + fe.Tag() + ")"
}
