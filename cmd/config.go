package cmd

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries all runtime configuration, loaded from the environment
// (optionally seeded from a .env file by main).
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Kafka  KafkaConfig
	Redis  RedisConfig
	Push   PushConfig
	Auth   AuthConfig
	Job    JobConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SslMode  string
}

type KafkaConfig struct {
	Brokers          []string
	OrderEventsTopic string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PushConfig struct {
	GatewayURL string
	APIKey     string
}

type AuthConfig struct {
	TokenSecret string
}

type JobConfig struct {
	ReminderSchedule string
	ReminderMaxAge   time.Duration
	ReminderWindow   time.Duration
}

type LogConfig struct {
	Level string
}

// LoadConfig reads configuration from environment variables with defaults
// suitable for local development.
func LoadConfig() (Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "ordering")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "ordering")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_ORDER_EVENTS_TOPIC", "order-events")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PUSH_GATEWAY_URL", "http://localhost:8090")
	viper.SetDefault("PUSH_API_KEY", "")
	viper.SetDefault("AUTH_TOKEN_SECRET", "dev-secret")
	viper.SetDefault("REMINDER_SCHEDULE", "0 */10 * * * *")
	viper.SetDefault("REMINDER_MAX_AGE", "24h")
	viper.SetDefault("REMINDER_WINDOW", "24h")
	viper.SetDefault("LOG_LEVEL", "info")

	reminderMaxAge, err := time.ParseDuration(viper.GetString("REMINDER_MAX_AGE"))
	if err != nil {
		return Config{}, err
	}

	reminderWindow, err := time.ParseDuration(viper.GetString("REMINDER_WINDOW"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server: ServerConfig{
			Port: viper.GetString("HTTP_PORT"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SslMode:  viper.GetString("DB_SSLMODE"),
		},
		Kafka: KafkaConfig{
			Brokers:          viper.GetStringSlice("KAFKA_BROKERS"),
			OrderEventsTopic: viper.GetString("KAFKA_ORDER_EVENTS_TOPIC"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Push: PushConfig{
			GatewayURL: viper.GetString("PUSH_GATEWAY_URL"),
			APIKey:     viper.GetString("PUSH_API_KEY"),
		},
		Auth: AuthConfig{
			TokenSecret: viper.GetString("AUTH_TOKEN_SECRET"),
		},
		Job: JobConfig{
			ReminderSchedule: viper.GetString("REMINDER_SCHEDULE"),
			ReminderMaxAge:   reminderMaxAge,
			ReminderWindow:   reminderWindow,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}, nil
}
