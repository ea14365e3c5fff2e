package enum

import "github.com/go-playground/validator/v10"

type EnvEnum string

const (
	LOCAL       EnvEnum = "local"
	DEVELOPMENT EnvEnum = "development"
	PRODUCTION  EnvEnum = "production"
	STAGING     EnvEnum = "staging"
)

func (e EnvEnum) ToString() string {
	return string(e)
}

func (e EnvEnum) IsValid() bool {
	switch e {
	case LOCAL, DEVELOPMENT, PRODUCTION, STAGING:
		return true
	}
	return false
}

// Enum is implemented by string enums that can validate themselves.
type Enum interface {
	IsValid() bool
}

// ValidateEnum backs the "enum" validation tag.
func ValidateEnum(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(Enum)
	return ok && value.IsValid()
}
