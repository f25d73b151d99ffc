package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Clinic booking policy. Hours are local to ClinicTimezone.
	ClinicTimezone         string `mapstructure:"CLINIC_TIMEZONE"`
	ClinicOpenHour         int    `mapstructure:"CLINIC_OPEN_HOUR"`
	ClinicCloseHour        int    `mapstructure:"CLINIC_CLOSE_HOUR"`
	ClinicCloseHourDisplay int    `mapstructure:"CLINIC_CLOSE_HOUR_DISPLAY"`
	ClinicAllowWeekends    bool   `mapstructure:"CLINIC_ALLOW_WEEKENDS"`
	BookingNoticeHours     int    `mapstructure:"BOOKING_NOTICE_HOURS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("CLINIC_TIMEZONE", "America/Vancouver")
	v.SetDefault("CLINIC_OPEN_HOUR", 9)
	v.SetDefault("CLINIC_CLOSE_HOUR", 17)
	v.SetDefault("CLINIC_CLOSE_HOUR_DISPLAY", 5)
	v.SetDefault("CLINIC_ALLOW_WEEKENDS", false)
	v.SetDefault("BOOKING_NOTICE_HOURS", 2)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("CLINIC_TIMEZONE")
	v.BindEnv("CLINIC_OPEN_HOUR")
	v.BindEnv("CLINIC_CLOSE_HOUR")
	v.BindEnv("CLINIC_CLOSE_HOUR_DISPLAY")
	v.BindEnv("CLINIC_ALLOW_WEEKENDS")
	v.BindEnv("BOOKING_NOTICE_HOURS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ClinicLocation resolves the configured clinic timezone.
func (c *Config) ClinicLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return nil, fmt.Errorf("CLINIC_TIMEZONE %q is not a valid IANA zone: %w", c.ClinicTimezone, err)
	}
	return loc, nil
}

// Validate checks that the configuration is safe to run with. The clinic
// hours must describe a non-empty day and the timezone must resolve.
func (c *Config) Validate() error {
	if _, err := c.ClinicLocation(); err != nil {
		return err
	}
	if c.ClinicOpenHour < 0 || c.ClinicOpenHour > 23 {
		return fmt.Errorf("CLINIC_OPEN_HOUR must be between 0 and 23, got %d", c.ClinicOpenHour)
	}
	if c.ClinicCloseHour < 0 || c.ClinicCloseHour > 23 {
		return fmt.Errorf("CLINIC_CLOSE_HOUR must be between 0 and 23, got %d", c.ClinicCloseHour)
	}
	if c.ClinicOpenHour >= c.ClinicCloseHour {
		return fmt.Errorf("CLINIC_OPEN_HOUR (%d) must be earlier than CLINIC_CLOSE_HOUR (%d)",
			c.ClinicOpenHour, c.ClinicCloseHour)
	}
	if c.BookingNoticeHours < 0 {
		return fmt.Errorf("BOOKING_NOTICE_HOURS must not be negative, got %d", c.BookingNoticeHours)
	}
	return nil
}
