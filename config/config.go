package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Routing provider (Google Distance Matrix).
	GoogleAPIKey             string  `mapstructure:"GOOGLE_API_KEY"`
	RoutingAPIURL            string  `mapstructure:"ROUTING_API_URL"`
	RoutingTimeoutSeconds    int     `mapstructure:"ROUTING_TIMEOUT_SECONDS"`
	RoutingRequestsPerSecond float64 `mapstructure:"ROUTING_REQUESTS_PER_SECOND"`

	// Slot engine.
	BusinessTimezone            string  `mapstructure:"BUSINESS_TIMEZONE"`
	TravelCacheBackend          string  `mapstructure:"TRAVEL_CACHE_BACKEND"`
	TravelCacheTTLSeconds       int     `mapstructure:"TRAVEL_CACHE_TTL_SECONDS"`
	TravelTrafficMultiplier     float64 `mapstructure:"TRAVEL_TRAFFIC_MULTIPLIER"`
	TravelFallbackMinutes       int     `mapstructure:"TRAVEL_FALLBACK_MINUTES"`
	CommitmentHomeTravelMinutes int     `mapstructure:"COMMITMENT_HOME_TRAVEL_MINUTES"`
	DefaultTravelSpeedKmh       float64 `mapstructure:"DEFAULT_TRAVEL_SPEED_KMH"`
	DefaultTravelRadiusKm       float64 `mapstructure:"DEFAULT_TRAVEL_RADIUS_KM"`
	DefaultStepMinutes          int     `mapstructure:"DEFAULT_STEP_MINUTES"`
	MaxAdvanceBookingDays       int     `mapstructure:"MAX_ADVANCE_BOOKING_DAYS"`
	BatchTravelConcurrency      int     `mapstructure:"BATCH_TRAVEL_CONCURRENCY"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "glowslots")
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("ROUTING_API_URL", "https://maps.googleapis.com/maps/api/distancematrix/json")
	v.SetDefault("ROUTING_TIMEOUT_SECONDS", 4)
	v.SetDefault("ROUTING_REQUESTS_PER_SECOND", 10)
	v.SetDefault("BUSINESS_TIMEZONE", "Africa/Nairobi")
	v.SetDefault("TRAVEL_CACHE_BACKEND", "redis")
	v.SetDefault("TRAVEL_CACHE_TTL_SECONDS", 300)
	v.SetDefault("TRAVEL_TRAFFIC_MULTIPLIER", 1.2)
	v.SetDefault("TRAVEL_FALLBACK_MINUTES", 30)
	v.SetDefault("COMMITMENT_HOME_TRAVEL_MINUTES", 30)
	v.SetDefault("DEFAULT_TRAVEL_SPEED_KMH", 30)
	v.SetDefault("DEFAULT_TRAVEL_RADIUS_KM", 15)
	v.SetDefault("DEFAULT_STEP_MINUTES", 15)
	v.SetDefault("MAX_ADVANCE_BOOKING_DAYS", 365)
	v.SetDefault("BATCH_TRAVEL_CONCURRENCY", 8)
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

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

// Location resolves the business timezone. Slots are always computed in this zone,
// never in the server's local one.
func (c Config) Location() (*time.Location, error) {
	name := c.BusinessTimezone
	if name == "" {
		name = "UTC"
	}
	return time.LoadLocation(name)
}

// RoutingTimeout is the bound placed on every routing provider call.
func (c Config) RoutingTimeout() time.Duration {
	if c.RoutingTimeoutSeconds <= 0 {
		return 4 * time.Second
	}
	return time.Duration(c.RoutingTimeoutSeconds) * time.Second
}

// TravelCacheTTL is how long a travel estimate stays fresh.
func (c Config) TravelCacheTTL() time.Duration {
	if c.TravelCacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TravelCacheTTLSeconds) * time.Second
}
