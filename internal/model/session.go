package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims - содержимое токена сессии: ID пользователя, iat и exp
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
