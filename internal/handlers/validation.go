package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// ValidationIssue describes one rejected input, located by where it came
// from ("body", "path", "query", "form") and its field name.
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is returned with 422 Unprocessable Entity.
type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateBody runs struct validation and converts failures to issues.
func validateBody(value any) []ValidationIssue {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationIssue{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}

	issues := make([]ValidationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, kind := describeFieldError(fe)
		issues = append(issues, ValidationIssue{
			Loc:  []string{"body", fe.Field()},
			Msg:  msg,
			Type: kind,
		})
	}
	return issues
}

func describeFieldError(fe validator.FieldError) (string, string) {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "Field required", "missing"
	case "email":
		return "value is not a valid email address", "value_error"
	case "min":
		if isString {
			return fmt.Sprintf("String should have at least %s characters", fe.Param()), "string_too_short"
		}
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()), "greater_than_equal"
	case "max":
		if isString {
			return fmt.Sprintf("String should have at most %s characters", fe.Param()), "string_too_long"
		}
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param()), "less_than_equal"
	case "gt":
		return fmt.Sprintf("Input should be greater than %s", fe.Param()), "greater_than"
	case "gte":
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()), "greater_than_equal"
	case "lt":
		return fmt.Sprintf("Input should be less than %s", fe.Param()), "less_than"
	case "lte":
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param()), "less_than_equal"
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag()), "value_error"
	}
}

func invalidInput(location, field, msg, kind string) ValidationIssue {
	return ValidationIssue{Loc: []string{location, field}, Msg: msg, Type: kind}
}

func invalidJSON(err error) ValidationIssue {
	return ValidationIssue{Loc: []string{"body"}, Msg: "JSON decode error: " + err.Error(), Type: "json_invalid"}
}

func writeValidationError(w http.ResponseWriter, issues ...ValidationIssue) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: issues})
}
