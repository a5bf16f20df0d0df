package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost   string
	ServicePort   int
	PublicBaseURL string `mapstructure:"public_base_url"`

	JWT     JWTConfig
	Redis   RedisConfig
	Minio   MinioConfig
	Upload  UploadConfig
	Auth    AuthConfig
	CORS    CORSConfig
	Hotlink HotlinkConfig
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration `mapstructure:"expires_in"`
}

type RedisConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool `mapstructure:"use_ssl"`
}

type UploadConfig struct {
	MaxFileSize     int64    `mapstructure:"max_file_size"` // В байтах
	AllowedTypes    []string `mapstructure:"allowed_types"`
	TrustClientType bool     `mapstructure:"trust_client_type"` // Легаси-режим: верить заявленному MIME без проверки сигнатуры
}

type AuthConfig struct {
	PlaintextPasswords bool `mapstructure:"plaintext_passwords"` // Легаси-режим хранения паролей, не включать без необходимости
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type HotlinkConfig struct {
	Enabled         bool
	AllowedReferers []string `mapstructure:"allowed_referers"`
	DefaultImage    string   `mapstructure:"default_image"` // Ключ объекта-заглушки; пусто = отдавать 403
}

const (
	envJWTSecret = "JWT_SECRET"

	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinioEndpoint  = "MINIO_ENDPOINT"
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envMinioBucket    = "MINIO_BUCKET"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("public_base_url", "http://localhost:8080")
	viper.SetDefault("jwt.expires_in", 168*time.Hour)
	viper.SetDefault("upload.max_file_size", int64(50*1024*1024))
	viper.SetDefault("upload.allowed_types", []string{
		"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml",
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// Секреты берём из окружения, не из toml
	cfg.JWT.Secret = os.Getenv(envJWTSecret)
	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET is not set, using insecure default")
		cfg.JWT.Secret = "test"
	}

	cfg.Redis.Host = os.Getenv(envRedisHost)
	if cfg.Redis.Host != "" {
		cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
		if err != nil {
			cfg.Redis.Port = 6379
		}
		cfg.Redis.User = os.Getenv(envRedisUser)
		cfg.Redis.Password = os.Getenv(envRedisPass)
		cfg.Redis.DialTimeout = 10 * time.Second
		cfg.Redis.ReadTimeout = 10 * time.Second
	}

	if v := os.Getenv(envMinioEndpoint); v != "" {
		cfg.Minio.Endpoint = v
	}
	if v := os.Getenv(envMinioAccessKey); v != "" {
		cfg.Minio.AccessKey = v
	}
	if v := os.Getenv(envMinioSecretKey); v != "" {
		cfg.Minio.SecretKey = v
	}
	if v := os.Getenv(envMinioBucket); v != "" {
		cfg.Minio.Bucket = v
	}

	if cfg.Auth.PlaintextPasswords {
		log.Warn("plaintext password mode is enabled, passwords are stored unhashed")
	}

	log.Info("config parsed")

	return cfg, nil
}
