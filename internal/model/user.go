package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims - claims токена внешнего провайдера авторизации.
// Subject - ID пользователя
type UserClaims struct {
	jwt.RegisteredClaims
}
