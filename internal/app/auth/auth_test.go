package auth

import (
	"testing"
	"time"

	"imagehost/internal/app/config"
	"imagehost/internal/app/ds"
	"imagehost/internal/app/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(secret string, ttl time.Duration, plaintext bool) *Service {
	return NewService(&config.Config{
		JWT: config.JWTConfig{Secret: secret, ExpiresIn: ttl},
		Auth: config.AuthConfig{
			PlaintextPasswords: plaintext,
		},
	})
}

func TestPasswordHashing(t *testing.T) {
	s := newService("secret", time.Hour, false)

	t.Run("Hash And Verify", func(t *testing.T) {
		hash, err := s.HashPassword("pw123456")
		require.NoError(t, err)
		assert.NotEqual(t, "pw123456", hash)
		assert.True(t, s.VerifyPassword("pw123456", hash))
		assert.False(t, s.VerifyPassword("wrong", hash))
	})

	t.Run("Hashes Are Salted", func(t *testing.T) {
		h1, err := s.HashPassword("pw123456")
		require.NoError(t, err)
		h2, err := s.HashPassword("pw123456")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestPlaintextMode(t *testing.T) {
	// Легаси-режим: пароль хранится как есть, сравнение константное по времени
	s := newService("secret", time.Hour, true)

	hash, err := s.HashPassword("pw123456")
	require.NoError(t, err)
	assert.Equal(t, "pw123456", hash)
	assert.True(t, s.VerifyPassword("pw123456", "pw123456"))
	assert.False(t, s.VerifyPassword("pw1234567", "pw123456"))
}

func TestTokens(t *testing.T) {
	s := newService("secret", time.Hour, false)
	user := &ds.User{
		ID:       42,
		Username: "alice",
		Role:     role.Admin,
	}

	t.Run("Round Trip", func(t *testing.T) {
		token, err := s.GenerateToken(user)
		require.NoError(t, err)

		claims := s.VerifyToken(token)
		require.NotNil(t, claims)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, role.Admin, claims.Role)
	})

	t.Run("Malformed Token Returns Nil", func(t *testing.T) {
		assert.Nil(t, s.VerifyToken("garbage"))
		assert.Nil(t, s.VerifyToken(""))
	})

	t.Run("Wrong Secret Returns Nil", func(t *testing.T) {
		token, err := s.GenerateToken(user)
		require.NoError(t, err)

		other := newService("different", time.Hour, false)
		assert.Nil(t, other.VerifyToken(token))
	})

	t.Run("Expired Token Returns Nil", func(t *testing.T) {
		expired := newService("secret", -time.Minute, false)
		token, err := expired.GenerateToken(user)
		require.NoError(t, err)

		assert.Nil(t, expired.VerifyToken(token))
	})
}
