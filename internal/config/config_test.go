package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	assert := assert.New(t)

	os.Setenv("MODE", "test")
	os.Setenv("API_BASE_URL", "https://api.destinyjobs.example")
	os.Setenv("API_TOKEN", "overrideApiToken")
	os.Setenv("TG_TOKEN", "overrideTgToken")
	os.Setenv("POLL_INTERVAL", "3h")
	os.Setenv("NOTIFIED_EXPIRATION_DAYS", "128")
	os.Setenv("DB_CONNECTION_STRING", "newConnectionString")
	os.Setenv("APP_NAME", "override-bot")
	os.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Get()

	assert.Equal("https://api.destinyjobs.example", cfg.Api.BaseURL)
	assert.Equal("overrideApiToken", cfg.Api.Token)
	assert.Equal("overrideTgToken", cfg.Bot.Token)
	assert.Equal(3*time.Hour, cfg.Bot.PollInterval)
	assert.Equal(128, cfg.Bot.NotifiedExpirationInDays)
	assert.Equal("newConnectionString", cfg.DB.ConnectionString)
	assert.Equal("override-bot", cfg.Logger.AppName)
	assert.Equal(LevelDebug, cfg.Logger.LogLevel)
}
