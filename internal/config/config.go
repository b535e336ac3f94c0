package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/starius/infobip"
)

// Environment variables read by Load.
const (
	EnvAPIKey     = "INFOBIP_API_KEY"
	EnvAuthType   = "INFOBIP_AUTH_TYPE"
	EnvUsername   = "INFOBIP_USERNAME"
	EnvPassword   = "INFOBIP_PASSWORD"
	EnvBaseHost   = "INFOBIP_BASE_HOST"
	EnvEncrypted  = "INFOBIP_ENCRYPTED"
	EnvProduction = "INFOBIP_PRODUCTION"
)

// Load reads client configuration from environment variables. Files are
// loaded first with godotenv, without overriding variables already set.
// With no files ".env" is tried, a missing .env is not an error.
func Load(files ...string) (infobip.Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) != 0 || !errors.Is(err, fs.ErrNotExist) {
			return infobip.Config{}, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	encrypted, err := getEnvAsBool(EnvEncrypted, true)
	if err != nil {
		return infobip.Config{}, err
	}
	production, err := getEnvAsBool(EnvProduction, false)
	if err != nil {
		return infobip.Config{}, err
	}

	return infobip.Config{
		APIKey:     os.Getenv(EnvAPIKey),
		AuthType:   infobip.AuthType(getEnv(EnvAuthType, string(infobip.AuthKey))),
		Username:   os.Getenv(EnvUsername),
		Password:   os.Getenv(EnvPassword),
		BaseHost:   os.Getenv(EnvBaseHost),
		Encrypted:  encrypted,
		Production: production,
	}, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("bad value of %s: %w", key, err)
	}
	return b, nil
}
