package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB connection string (tourism catalog + amenity requests).
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisChatDB    int    `mapstructure:"REDIS_CHAT_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// External reservations/payments API.
	ReservationsAPIURL string `mapstructure:"RESERVATIONS_API_URL"`
	DefaultFacilityID  int    `mapstructure:"DEFAULT_FACILITY_ID"`

	// Stripe.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Gemini (concierge chat).
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Cloudinary (passport image uploads).
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Check-in flow tuning.
	BookingLookupTimeoutMS int `mapstructure:"BOOKING_LOOKUP_TIMEOUT_MS"`
	PaymentPollIntervalSec int `mapstructure:"PAYMENT_POLL_INTERVAL_SEC"`
	PaymentPollMaxAttempts int `mapstructure:"PAYMENT_POLL_MAX_ATTEMPTS"`

	// Property details surfaced to guests after check-in and to the concierge.
	PropertyName string `mapstructure:"PROPERTY_NAME"`
	CheckInTime  string `mapstructure:"CHECK_IN_TIME"`
	CheckOutTime string `mapstructure:"CHECK_OUT_TIME"`
	DoorCode     string `mapstructure:"DOOR_CODE"`
	WifiSSID     string `mapstructure:"WIFI_SSID"`
	WifiPassword string `mapstructure:"WIFI_PASSWORD"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_CHAT_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("RESERVATIONS_API_URL", "http://localhost:8000/api")
	viper.SetDefault("DEFAULT_FACILITY_ID", 1)
	viper.SetDefault("BOOKING_LOOKUP_TIMEOUT_MS", 1000)
	viper.SetDefault("PAYMENT_POLL_INTERVAL_SEC", 3)
	viper.SetDefault("PAYMENT_POLL_MAX_ATTEMPTS", 20)
	viper.SetDefault("PROPERTY_NAME", "Zen Hills Tokyo")
	viper.SetDefault("CHECK_IN_TIME", "15:00")
	viper.SetDefault("CHECK_OUT_TIME", "10:00")
	viper.SetDefault("DOOR_CODE", "8092")
	viper.SetDefault("WIFI_SSID", "Hotel_Guest_5G")
	viper.SetDefault("WIFI_PASSWORD", "stay2024")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
