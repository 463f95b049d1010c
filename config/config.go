package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name      string `envconfig:"APP_NAME" default:"MediConnect"`
		Timezone  string `envconfig:"TIMEZONE"`
		PortalURL string `envconfig:"PORTAL_URL"`
		CORS      struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers           []string `envconfig:"BROKERS"`
		NotificationTopic string   `envconfig:"NOTIFICATION_TOPIC" default:"appointment.notifications"`
		SASL              struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Notification struct {
		EmailProvider string `envconfig:"EMAIL_PROVIDER" default:"stub"`
		FromEmail     string `envconfig:"FROM_EMAIL"`
		FromName      string `envconfig:"FROM_NAME" default:"MediConnect"`
		SendGrid      struct {
			APIKey string `envconfig:"API_KEY"`
		} `envconfig:"SENDGRID"`
		SES struct {
			Region          string `envconfig:"REGION"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"SES"`
		SMTP struct {
			Host     string `envconfig:"HOST"`
			Port     int    `envconfig:"PORT" default:"587"`
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SMTP"`
		Twilio struct {
			Enable     bool   `envconfig:"ENABLE"`
			AccountSID string `envconfig:"ACCOUNT_SID"`
			AuthToken  string `envconfig:"AUTH_TOKEN"`
			From       string `envconfig:"FROM"`
		} `envconfig:"TWILIO"`
	} `envconfig:"NOTIFICATION"`

	Scheduling struct {
		BookingLookaheadDays    int `envconfig:"BOOKING_LOOKAHEAD_DAYS" default:"3"`
		RescheduleWindowDays    int `envconfig:"RESCHEDULE_WINDOW_DAYS" default:"7"`
		CascadeHorizonDays      int `envconfig:"CASCADE_HORIZON_DAYS" default:"30"`
		MissedAfterHours        int `envconfig:"MISSED_AFTER_HOURS" default:"3"`
		RescheduleExpiryHours   int `envconfig:"RESCHEDULE_EXPIRY_HOURS" default:"24"`
		RescheduleReminderHours int `envconfig:"RESCHEDULE_REMINDER_HOURS" default:"12"`
		ReminderLeadMinutes     int `envconfig:"REMINDER_LEAD_MINUTES" default:"60"`
		ReminderWindowMinutes   int `envconfig:"REMINDER_WINDOW_MINUTES" default:"5"`
		TransferSlotLimit       int `envconfig:"TRANSFER_SLOT_LIMIT" default:"10"`
	} `envconfig:"SCHEDULING"`

	Metrics struct {
		Enable bool   `envconfig:"ENABLE" default:"true"`
		Path   string `envconfig:"PATH" default:"/metrics"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
