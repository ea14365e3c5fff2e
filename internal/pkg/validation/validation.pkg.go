package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"go-quickteller/internal/common/enum"
)

var val = newValidator()

var validationMessages = map[string]string{
	"required": "is required",
	"url":      "must be a valid URL",
	"numeric":  "must be numeric",
	"number":   "must be a number",
	"oneof":    "must be one of the allowed values: %s",
	"email":    "must be a valid email address",
	"min":      "must be greater than or equal to %s",
	"max":      "must be less than or equal to %s",
	"len":      "must have the exact length of %s",
	"alphanum": "must contain only alphanumeric characters",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"enum":     "must be one of the allowed enum values: %s",
	"amount":   "must be a positive amount in minor units",
	"phone":    "must be a valid phone number",
}

var (
	amountPattern = regexp.MustCompile(`^[0-9]+$`)
	phonePattern  = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	_ = registerValidations(v)
	return v
}

// Setup registers the custom validations on gin's binding engine so request
// DTOs can use them in binding tags.
func Setup() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("failed to get validation engine")
	}

	v.RegisterTagNameFunc(jsonTagName)
	if err := registerValidations(v); err != nil {
		return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
	}
	return nil
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("amount", validateAmount); err != nil {
		return fmt.Errorf("failed to register amount validation: %w", err)
	}
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return fmt.Errorf("failed to register phone validation: %w", err)
	}
	return nil
}

// validateAmount accepts digit strings in minor units that are not all zeros.
func validateAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().String()
	return amountPattern.MatchString(amount) && strings.Trim(amount, "0") != ""
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func Validate(payload any) error {
	if err := val.Struct(payload); err != nil {
		return errors.New("Validation failed: " + ParseError(err))
	}
	return nil
}

// ParseError renders validator errors as "field message" pairs and returns
// any other error's text unchanged.
func ParseError(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg, ok := validationMessages[e.Tag()]
		if !ok {
			msg = "is invalid"
		}
		switch e.Tag() {
		case "enum":
			msg = fmt.Sprintf(msg, e.Type())
		default:
			if strings.Contains(msg, "%s") {
				msg = fmt.Sprintf(msg, e.Param())
			}
		}
		messages = append(messages, fmt.Sprintf("%s %s", e.Field(), msg))
	}
	return strings.Join(messages, ", ")
}
