package ds

import (
	"imagehost/internal/app/role"

	"github.com/golang-jwt/jwt"
)

// JWTClaims содержит данные пользователя в токене (пароль не включается)
type JWTClaims struct {
	jwt.StandardClaims
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	Role     role.Role `json:"role"`
}
