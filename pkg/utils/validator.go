package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so error keys match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct returns nil when data is valid, otherwise one entry per
// failing field keyed by its JSON path.
func ValidateStruct(data any) map[string]ErrorDetail {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]ErrorDetail)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			path := jsonPath(fe)
			errors[path] = ErrorDetail{
				Msg:      getErrorMessage(fe),
				Path:     path,
				Location: "body",
			}
		}
	}

	return errors
}

// jsonPath drops the root struct name: "LockSeatsRequest.seatIds[0]" -> "seatIds[0]".
func jsonPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must contain at least %s item(s)", err.Param())
	case "max":
		return fmt.Sprintf("Must contain at most %s item(s)", err.Param())
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "unique":
		return "Must not contain duplicates"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}
