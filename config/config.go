package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all process configuration, loaded from a .env file or the
// environment.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	FirebaseAPIKey    string `mapstructure:"FIREBASE_API_KEY"`
	FirebaseProjectID string `mapstructure:"FIREBASE_PROJECT_ID"`

	AssistantAPIKey      string `mapstructure:"ASSISTANT_API_KEY"`
	AssistantAPIEndpoint string `mapstructure:"ASSISTANT_API_ENDPOINT"`
	AssistantModel       string `mapstructure:"ASSISTANT_MODEL"`

	// NotifyChannel selects the notification variant: "webhook" or "email".
	NotifyChannel      string `mapstructure:"NOTIFY_CHANNEL"`
	NotifyWebhookURL   string `mapstructure:"NOTIFY_WEBHOOK_URL"`
	NotifySMTPAddr     string `mapstructure:"NOTIFY_SMTP_ADDR"`
	NotifySMTPFrom     string `mapstructure:"NOTIFY_SMTP_FROM"`
	NotifySMTPUser     string `mapstructure:"NOTIFY_SMTP_USER"`
	NotifySMTPPassword string `mapstructure:"NOTIFY_SMTP_PASSWORD"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// LoadConfig reads configuration from the given directory's .env file,
// falling back to environment variables when the file is absent.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// GetDBConnString returns the MySQL DSN.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString returns the Redis address.
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
