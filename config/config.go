package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string `mapstructure:"dbname"`
	}
	JWT struct {
		SecretKey string `mapstructure:"secretkey"`
		ExpiresIn int    `mapstructure:"expiresin"` // в часах
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	RateFeed struct {
		URL string // XML-фид дневной ставки пени; пустое значение — ставка по умолчанию
	} `mapstructure:"ratefeed"`
}

// NewConfig создает новый экземпляр конфигурации.
// Значения берутся из переменных окружения (SERVER_PORT, DB_HOST и т.д.)
// поверх значений по умолчанию.
func NewConfig() (*Config, error) {
	v := viper.New()

	// Настройки сервера
	v.SetDefault("server.port", 8080)

	// Настройки базы данных
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.dbname", "admin_db")

	// Настройки JWT
	v.SetDefault("jwt.secretkey", "your-secret-key-here")
	v.SetDefault("jwt.expiresin", 24)

	// Настройки SMTP
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "your-email@gmail.com")
	v.SetDefault("smtp.password", "your-app-password")
	v.SetDefault("smtp.from", "your-email@gmail.com")

	// Настройки фида ставок
	v.SetDefault("ratefeed.url", "")

	// Переопределение через окружение: server.port -> SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %v", err)
	}

	return cfg, nil
}
