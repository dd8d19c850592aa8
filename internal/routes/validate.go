package routes

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationError describes one rejected field of a request body.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// BadRequestError is the body of a 400 caused by invalid input.
type BadRequestError struct {
	Message string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}

func (e *BadRequestError) Error() string { return e.Message }

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bind parses the JSON body into out and validates it. Failures come back as
// *BadRequestError. An empty body is allowed when out has no required fields.
func bind(c *fiber.Ctx, v *validator.Validate, out any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(out); err != nil {
			return &BadRequestError{Message: "Invalid request body"}
		}
	}
	if errs := validate(v, out); len(errs) > 0 {
		return &BadRequestError{Message: "Invalid request data", Details: errs}
	}
	return nil
}

func validate(v *validator.Validate, obj any) []ValidationError {
	err := v.Struct(obj)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error(), Type: "invalid"}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: fieldMessage(fe), Type: fe.Tag()})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "len":
		return "Value must be " + fe.Param() + " characters long"
	case "numeric":
		return "Value must contain only digits"
	case "oneof":
		return "Value must be one of " + fe.Param()
	default:
		return "Invalid value"
	}
}
