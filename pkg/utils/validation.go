package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Normalizer is implemented by request models that sanitize free text and fill
// defaults between decoding and validation.
type Normalizer interface {
	Normalize()
}

// FieldValidator is implemented by request models with rules that span fields.
type FieldValidator interface {
	ValidateFields() []FieldError
}

var registerTagNames sync.Once

func validatorEngine() *validator.Validate {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	registerTagNames.Do(func() {
		if v == nil {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
	return v
}

// BindJSON decodes the request body into obj, normalizes it and validates it,
// returning a *ValidationError that lists every failing field.
func BindJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil {
		return NewValidationError(FieldError{Field: "body", Reason: "is required"})
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return NewValidationError(FieldError{Field: "body", Reason: "could not be read"})
	}
	typeErrs, err := decodeAll(body, obj)
	if err != nil {
		return err
	}
	return validate(obj, typeErrs...)
}

const maxTypeErrors = 32

// decodeAll decodes body into obj. A value of the wrong JSON type is reported,
// removed from the body and decoding restarts, so every mismatch is listed and
// the remaining fields still reach validation.
func decodeAll(body []byte, obj interface{}) ([]FieldError, error) {
	var fields []FieldError
	for {
		err := json.NewDecoder(bytes.NewReader(body)).Decode(obj)
		if err == nil {
			return fields, nil
		}
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" || len(fields) >= maxTypeErrors {
			if len(fields) > 0 {
				return nil, NewValidationError(fields...)
			}
			return nil, decodeError(err)
		}
		fields = append(fields, FieldError{Field: typeErr.Field, Reason: "must be of type " + typeErr.Type.String()})

		var dropped bool
		body, dropped = dropField(body, typeErr.Field)
		if !dropped {
			return nil, NewValidationError(fields...)
		}
		v := reflect.ValueOf(obj).Elem()
		v.Set(reflect.Zero(v.Type()))
	}
}

// dropField removes the member at a dotted path. Arrays along the path are
// walked element by element since the decoder reports no index.
func dropField(body []byte, path string) ([]byte, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return body, false
	}
	if !deletePath(doc, strings.Split(path, ".")) {
		return body, false
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return body, false
	}
	return out, true
}

func deletePath(node interface{}, keys []string) bool {
	switch n := node.(type) {
	case map[string]interface{}:
		for k, child := range n {
			if !strings.EqualFold(k, keys[0]) {
				continue
			}
			if len(keys) == 1 {
				delete(n, k)
				return true
			}
			return deletePath(child, keys[1:])
		}
	case []interface{}:
		dropped := false
		for _, el := range n {
			if deletePath(el, keys) {
				dropped = true
			}
		}
		return dropped
	}
	return false
}

// BindQuery is BindJSON for query-string parameters.
func BindQuery(c *gin.Context, obj interface{}) error {
	if err := binding.MapFormWithTag(obj, c.Request.URL.Query(), "form"); err != nil {
		return NewValidationError(FieldError{Field: "query", Reason: err.Error()})
	}
	return validate(obj)
}

// validate normalizes and validates obj. typeErrs are fields the decoder
// already rejected; rule failures on those fields are not repeated.
func validate(obj interface{}, typeErrs ...FieldError) error {
	if n, ok := obj.(Normalizer); ok {
		n.Normalize()
	}

	rejected := make(map[string]bool, len(typeErrs))
	for _, fe := range typeErrs {
		rejected[fe.Field] = true
	}
	fields := append([]FieldError(nil), typeErrs...)
	add := func(fe FieldError) {
		if !rejected[fe.Field] {
			fields = append(fields, fe)
		}
	}

	if err := validatorEngine().Struct(obj); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return NewValidationError(FieldError{Field: "body", Reason: err.Error()})
		}
		for _, fe := range verrs {
			add(FieldError{Field: fieldPath(fe), Reason: describe(fe)})
		}
	}
	if fv, ok := obj.(FieldValidator); ok {
		for _, fe := range fv.ValidateFields() {
			add(fe)
		}
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return NewValidationError(FieldError{Field: "body", Reason: "is required"})
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return NewValidationError(FieldError{Field: field, Reason: "must be of type " + typeErr.Type.String()})
	default:
		return NewValidationError(FieldError{Field: "body", Reason: "must be valid JSON"})
	}
}

// fieldPath drops the root struct name: "TripRequest.members" -> "members".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "alpha":
		return "must contain letters only"
	default:
		return "failed the " + fe.Tag() + " rule"
	}
}
