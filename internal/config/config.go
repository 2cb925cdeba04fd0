package config

import (
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Borrowing
		Pagination
		Tasks
		Scheduler
		Audit
		Metrics
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
		ReadOnly                 bool // Maintenance mode: reads only
	}
	Database struct {
		Driver DatabaseDriver
		Path   string // SQLite file
		DSN    string // PostgreSQL connection string
	}
	Borrowing struct {
		LoanPeriodDays     int
		FinePerDay         int64 // Currency minor units (VND)
		DefaultBorrowLimit int
	}
	Pagination struct {
		DefaultLimit int
		MaxLimit     int
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Scheduler struct {
		OverdueRemindersEnabled     bool
		OverdueRemindersSchedule    string // Cron format: "0 8 * * *" = daily at 08:00
		NotificationCleanupEnabled  bool
		NotificationCleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
		NotificationRetentionDays   int    // Read notifications older than this are removed
	}
	Audit struct {
		Enabled bool
	}
	Metrics struct {
		Enabled bool // Serves /metrics for Prometheus
	}
	Log struct {
		Level       string
		Development bool
	}
)

// LoanPeriod is the loan length as a duration.
func (b Borrowing) LoanPeriod() time.Duration {
	return time.Duration(b.LoanPeriodDays) * 24 * time.Hour
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("read_only", false)
	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")

	// Lending rules
	v.SetDefault("loan_period_days", DefaultLoanPeriodDays)
	v.SetDefault("fine_per_day", DefaultFinePerDay)
	v.SetDefault("default_borrow_limit", DefaultBorrowLimit)
	v.SetDefault("pagination_default_limit", 10)
	v.SetDefault("pagination_max_limit", 100)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "1m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Scheduler defaults
	v.SetDefault("overdue_reminders_enabled", true)
	v.SetDefault("overdue_reminders_schedule", "0 8 * * *")
	v.SetDefault("notification_cleanup_enabled", true)
	v.SetDefault("notification_cleanup_schedule", "0 3 * * *")
	v.SetDefault("notification_retention_days", 30)

	v.SetDefault("audit_enabled", true)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ReadOnly:                 v.GetBool("READ_ONLY"),
		},
		Database: Database{
			Driver: DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Borrowing: Borrowing{
			LoanPeriodDays:     v.GetInt("LOAN_PERIOD_DAYS"),
			FinePerDay:         v.GetInt64("FINE_PER_DAY"),
			DefaultBorrowLimit: v.GetInt("DEFAULT_BORROW_LIMIT"),
		},
		Pagination: Pagination{
			DefaultLimit: v.GetInt("PAGINATION_DEFAULT_LIMIT"),
			MaxLimit:     v.GetInt("PAGINATION_MAX_LIMIT"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Scheduler: Scheduler{
			OverdueRemindersEnabled:     v.GetBool("OVERDUE_REMINDERS_ENABLED"),
			OverdueRemindersSchedule:    v.GetString("OVERDUE_REMINDERS_SCHEDULE"),
			NotificationCleanupEnabled:  v.GetBool("NOTIFICATION_CLEANUP_ENABLED"),
			NotificationCleanupSchedule: v.GetString("NOTIFICATION_CLEANUP_SCHEDULE"),
			NotificationRetentionDays:   v.GetInt("NOTIFICATION_RETENTION_DAYS"),
		},
		Audit: Audit{
			Enabled: v.GetBool("AUDIT_ENABLED"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Log: Log{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},
	}
}
