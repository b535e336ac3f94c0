package infobip

import (
	"encoding/base64"
	"fmt"
)

// AuthType selects the Authorization header scheme.
type AuthType string

const (
	// AuthBasic sends "Basic base64(username:password)".
	AuthBasic AuthType = "basic"

	// AuthKey sends "App <api key>".
	AuthKey AuthType = "key"
)

// BasicAuthorization returns the value of Authorization header for HTTP
// basic authentication.
func BasicAuthorization(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// KeyAuthorization returns the value of Authorization header for API key
// authentication. The key is sent as is.
func KeyAuthorization(apiKey string) string {
	return "App " + apiKey
}

// authorization returns the header for the configured scheme.
func (c *Config) authorization() (string, error) {
	switch c.AuthType {
	case AuthBasic:
		if c.Username == "" {
			return "", fmt.Errorf("basic auth requires a username")
		}
		return BasicAuthorization(c.Username, c.Password), nil
	case AuthKey, "":
		if c.APIKey == "" {
			return "", fmt.Errorf("API key is required")
		}
		return KeyAuthorization(c.APIKey), nil
	}
	return "", fmt.Errorf("unknown auth type %q", c.AuthType)
}
