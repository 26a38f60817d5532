package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ApiConfig struct {
	BaseURL              string  `mapstructure:"base_url" validate:"required,url"`
	Token                string  `mapstructure:"token" validate:"required"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
}

func (config ApiConfig) validate() error {
	return validator.New().Struct(config)
}

func (config ApiConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("api.base_url", "API_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("api.token", "API_TOKEN"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
