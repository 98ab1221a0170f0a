// Package config loads typed configuration for the scheduler from the
// environment (and an optional .env file), with sensible defaults so the
// scheduler runs out of the box in development.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the scheduler's full runtime configuration.
type Config struct {
	Env string

	Log       LogConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
}

// LogConfig controls the zap logger's verbosity and encoding.
type LogConfig struct {
	Level  string
	Format string
}

// RedisConfig addresses the optional shared solve-cache.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SchedulerConfig holds the scheduler knobs loaded from the environment.
// cmd/scheduler-demo passes MaxTimeLimit and the three soft-objective
// toggles to Generate and reads the cache flags itself.
type SchedulerConfig struct {
	// MaxTimeLimit bounds a single Generate solver invocation.
	MaxTimeLimit time.Duration
	// RepairTimeLimit is loaded from SCHEDULER_REPAIR_TIME_LIMIT.
	// scheduler.Scheduler.Repair does not read it; it always gives the
	// residual solve a fixed 30-second budget.
	RepairTimeLimit time.Duration

	RespectFacultyPreferences    bool
	PrioritizeDepartmentGrouping bool
	DistributeCoursesEvenly      bool

	// TimePeriodsPerDay is loaded from SCHEDULER_TIME_PERIODS_PER_DAY. The
	// scheduler does not read it: its default slot grid is always
	// slotgrid.DefaultPeriods (ten hourly periods per day).
	TimePeriodsPerDay int

	// UseCache enables the solve-cache lookup before invoking a backend.
	UseCache bool
	// UseRedisCache selects the shared Redis cache instead of the
	// in-process one; ignored when UseCache is false.
	UseRedisCache bool
}

// Load reads configuration from the environment, falling back to .env and
// then to the defaults set in setDefaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Scheduler = SchedulerConfig{
		MaxTimeLimit:                 parseDuration(v.GetString("SCHEDULER_MAX_TIME_LIMIT"), 30*time.Second),
		RepairTimeLimit:              parseDuration(v.GetString("SCHEDULER_REPAIR_TIME_LIMIT"), 5*time.Second),
		RespectFacultyPreferences:    v.GetBool("SCHEDULER_RESPECT_FACULTY_PREFERENCES"),
		PrioritizeDepartmentGrouping: v.GetBool("SCHEDULER_PRIORITIZE_DEPARTMENT_GROUPING"),
		DistributeCoursesEvenly:      v.GetBool("SCHEDULER_DISTRIBUTE_COURSES_EVENLY"),
		TimePeriodsPerDay:            v.GetInt("SCHEDULER_TIME_PERIODS_PER_DAY"),
		UseCache:                     v.GetBool("SCHEDULER_USE_CACHE"),
		UseRedisCache:                v.GetBool("SCHEDULER_USE_REDIS_CACHE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SCHEDULER_MAX_TIME_LIMIT", "30s")
	v.SetDefault("SCHEDULER_REPAIR_TIME_LIMIT", "5s")
	v.SetDefault("SCHEDULER_RESPECT_FACULTY_PREFERENCES", true)
	v.SetDefault("SCHEDULER_PRIORITIZE_DEPARTMENT_GROUPING", true)
	v.SetDefault("SCHEDULER_DISTRIBUTE_COURSES_EVENLY", true)
	v.SetDefault("SCHEDULER_TIME_PERIODS_PER_DAY", 10)
	v.SetDefault("SCHEDULER_USE_CACHE", true)
	v.SetDefault("SCHEDULER_USE_REDIS_CACHE", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
