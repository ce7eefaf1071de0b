package env

import (
	"fmt"
	"os"
	"slot_backend/internal/config"
)

const (
	authTokenSecretEnvName = "AUTH_TOKEN_SECRET"
)

type authConfig struct {
	tokenSecretKey string
}

// NewAuthConfig - секрет, которым внешний провайдер подписывает токены
func NewAuthConfig() (config.AuthConfig, error) {
	secret := os.Getenv(authTokenSecretEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("auth token secret key not found")
	}

	return &authConfig{
		tokenSecretKey: secret,
	}, nil
}

func (a *authConfig) TokenSecretKey() []byte {
	return []byte(a.tokenSecretKey)
}
