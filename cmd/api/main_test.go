package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"seatrade/internal/config"
)

func TestValidateConfig(t *testing.T) {
	cfg := &config.Config{
		App:  config.AppConfig{Port: "8000"},
		Auth: config.AuthConfig{SecretKey: strings.Repeat("k", 32)},
	}
	assert.NoError(t, validateConfig(cfg))

	cfg.Auth.SecretKey = "your-secret-key-change-in-production"
	assert.Error(t, validateConfig(cfg))

	cfg.Auth.SecretKey = "short"
	assert.Error(t, validateConfig(cfg))

	cfg.Auth.SecretKey = strings.Repeat("k", 32)
	cfg.App.Port = ""
	assert.Error(t, validateConfig(cfg))
}
