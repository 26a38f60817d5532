package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type BotConfig struct {
	Token                    string        `mapstructure:"token"`
	PollInterval             time.Duration `mapstructure:"poll_interval"`
	NotifiedExpirationInDays int           `mapstructure:"notified_expiration_days"`
	AnalyzeUnscored          bool          `mapstructure:"analyze_unscored"`
}

func (config BotConfig) validate() error {

	var missingFields []string

	if config.Token == "" {
		missingFields = append(missingFields, "token")
	}

	if config.PollInterval <= 0 {
		missingFields = append(missingFields, "poll_interval")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config BotConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("bot.token", "TG_TOKEN"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("bot.poll_interval", "POLL_INTERVAL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("bot.notified_expiration_days", "NOTIFIED_EXPIRATION_DAYS"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
