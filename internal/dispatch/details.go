package dispatch

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

// validationDetails converts decode and validation errors into a
// map[field]message for APIError.Details.
func validationDetails(err error) map[string]string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return map[string]string{"arguments": "invalid json"}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "arguments"
		}
		return map[string]string{field: "must be a " + typeErr.Type.String()}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = fieldMessage(fe)
		}
		return out
	}

	return map[string]string{"arguments": "invalid arguments"}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "failed validation: " + fe.Tag()
	}
}
