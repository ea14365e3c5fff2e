package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// GetEnv loads .env when present and reads Config from the environment.
func GetEnv() (config *Config, er error) {
	err := godotenv.Load()
	if err != nil {
		_ = godotenv.Load("../../.env")
	}

	return Parse(os.LookupEnv)
}

// Parse fills Config through lookup. Unset variables take their envDefault;
// variables with neither a value nor a default are an error.
func Parse(lookup func(string) (string, bool)) (config *Config, er error) {
	config = &Config{}
	v := reflect.ValueOf(config).Elem()
	t := v.Type()

	for i := range make([]struct{}, v.NumField()) {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, exists := lookup(envTag)
		if !exists {
			value, exists = field.Tag.Lookup("envDefault")
		}
		if !exists {
			er = fmt.Errorf("environment variable %s not set", envTag)
			return nil, er
		}

		switch field.Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(value)
		case reflect.Int:
			intValue, err := strconv.Atoi(value)
			if err != nil {
				er = fmt.Errorf("invalid value for %s: %v", envTag, err)
				return nil, er
			}
			v.Field(i).SetInt(int64(intValue))
		case reflect.Bool:
			boolValue, err := strconv.ParseBool(value)
			if err != nil {
				er = fmt.Errorf("invalid boolean value for %s: %v", envTag, err)
				return nil, er
			}
			v.Field(i).SetBool(boolValue)
		default:
			panic("unhandled default case")
		}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if !config.AppEnv.IsValid() {
		return nil, fmt.Errorf("invalid value for APP_ENV: %q", config.AppEnv)
	}

	return config, nil
}
