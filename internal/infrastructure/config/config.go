package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	SecretKey string `env:"SECRET_KEY"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	AppURL    string `env:"APP_URL,    default=http://localhost:8080"`

	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
	Admin AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=altarmaker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	Server   string `env:"MAIL_SERVER"`
	Port     int    `env:"MAIL_PORT,    default=587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	UseTLS   bool   `env:"MAIL_USE_TLS, default=true"`
	Sender   string `env:"MAIL_DEFAULT_SENDER"`
}

// AdminConfig optionally seeds the initial admin account at startup when no
// admin exists yet.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
