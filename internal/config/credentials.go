package config

import (
	"github.com/spf13/viper"
)

// Environment variables consulted for credentials.
const (
	EnvAPIToken = "ANET_API_TOKEN"
	EnvAPIKey   = "ANET_API_KEY"
)

// Credentials is the resolved Atlantic.Net key pair. The public key doubles
// as the API token; the private key signs requests.
type Credentials struct {
	PublicKey  string
	PrivateKey string
}

// Complete reports whether both halves of the key pair are present.
func (c Credentials) Complete() bool {
	return c.PublicKey != "" && c.PrivateKey != ""
}

// ResolveCredentials applies the precedence chain for each half of the key
// pair: explicit command-line value, then environment variable, then the
// settings file. Empty fields mean no source provided a value; callers
// decide whether that is fatal (an API call without credentials is,
// printing the export lines is not).
func (s *Settings) ResolveCredentials(flagToken, flagKey string) Credentials {
	v := viper.New()
	_ = v.BindEnv("api_token", EnvAPIToken)
	_ = v.BindEnv("api_key", EnvAPIKey)

	c := Credentials{PublicKey: s.PublicKey, PrivateKey: s.PrivateKey}
	if t := v.GetString("api_token"); t != "" {
		c.PublicKey = t
	}
	if k := v.GetString("api_key"); k != "" {
		c.PrivateKey = k
	}
	if flagToken != "" {
		c.PublicKey = flagToken
	}
	if flagKey != "" {
		c.PrivateKey = flagKey
	}
	return c
}
