package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the check-in cutoff rules. A check-in after
// LateCutoff plus GraceMinutes is recorded as LATE.
type AttendanceConfig struct {
	LateCutoff   string // "HH:MM", local clock
	GraceMinutes int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kantorhq-hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance cutoff configuration
	graceMinutes, err := strconv.Atoi(getEnv("ATTENDANCE_GRACE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_GRACE_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LateCutoff:   getEnv("ATTENDANCE_LATE_CUTOFF", "09:00"),
		GraceMinutes: graceMinutes,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := parseClock(c.Attendance.LateCutoff); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_LATE_CUTOFF: %w", err)
	}
	if c.Attendance.GraceMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_GRACE_MINUTES must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func parseClock(clock string) (struct{ Hour, Minute int }, error) {
	var hm struct{ Hour, Minute int }
	if _, err := fmt.Sscanf(clock, "%d:%d", &hm.Hour, &hm.Minute); err != nil {
		return hm, err
	}
	if hm.Hour < 0 || hm.Hour > 23 || hm.Minute < 0 || hm.Minute > 59 {
		return hm, fmt.Errorf("clock %q out of range", clock)
	}
	return hm, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
