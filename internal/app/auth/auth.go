package auth

import (
	"crypto/subtle"
	"time"

	"imagehost/internal/app/config"
	"imagehost/internal/app/ds"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Service отвечает за пароли и JWT токены
type Service struct {
	secret    []byte
	expiresIn time.Duration
	plaintext bool
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:    []byte(cfg.JWT.Secret),
		expiresIn: cfg.JWT.ExpiresIn,
		plaintext: cfg.Auth.PlaintextPasswords,
	}
}

// HashPassword хеширует пароль bcrypt-ом. В легаси-режиме пароль хранится как есть
func (s *Service) HashPassword(password string) (string, error) {
	if s.plaintext {
		return password, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword проверяет пароль против сохранённого значения.
// В легаси-режиме сравнение обязано быть константным по времени
func (s *Service) VerifyPassword(password, stored string) bool {
	if s.plaintext {
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// GenerateToken выдаёт подписанный JWT с данными пользователя (без пароля)
func (s *Service) GenerateToken(user *ds.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(s.expiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "imagehost",
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})

	return token.SignedString(s.secret)
}

// VerifyToken возвращает claims токена или nil при любой ошибке проверки
// (истёк, повреждён, неверная подпись). Ошибки наружу не отдаются:
// nil для вызывающего означает "не аутентифицирован"
func (s *Service) VerifyToken(tokenString string) *ds.JWTClaims {
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil
	}

	return claims
}
