package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type AppEnv string

const (
	ProductionEnv AppEnv = "production"
	DevelopEnv    AppEnv = "develop"
	TestEnv       AppEnv = "test"
)

// Mode selects what the form does with a submitted number
type Mode string

const (
	ModeLog  Mode = "log"
	ModeCall Mode = "call"
)

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8080
	DefaultCallMessage = "Hello! This call was requested from the phone number form."
)

type (
	// Config holds all application configuration values
	Config struct {
		AppEnv      AppEnv
		LogLevel    logrus.Level
		HTTP        HTTP
		Mode        Mode
		CallMessage string
		Twilio      TwilioCredentials
	}

	HTTP struct {
		Host string
		Port int
	}

	// TwilioCredentials are the three secrets needed to place a call
	TwilioCredentials struct {
		AccountSID  string `mapstructure:"TWILIO_ACCOUNT_SID"`
		AuthToken   string `mapstructure:"TWILIO_AUTH_TOKEN"`
		PhoneNumber string `mapstructure:"TWILIO_PHONE_NUMBER"`
	}
)

// LoadConfig reads server settings from environment variables.
// Twilio credentials are resolved separately through a CredentialSource.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      AppEnv(getEnv("APP_ENV", string(DevelopEnv))),
		LogLevel:    logrus.InfoLevel,
		HTTP:        HTTP{Host: getEnv("HOST", DefaultHost), Port: DefaultPort},
		CallMessage: getEnv("CALL_MESSAGE", DefaultCallMessage),
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "config : invalid PORT %q", raw)
		}
		cfg.HTTP.Port = port
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, errors.Wrap(err, "config : invalid LOG_LEVEL")
		}
		cfg.LogLevel = level
	}

	mode, err := ParseMode(getEnv("DIALER_MODE", string(ModeLog)))
	if err != nil {
		return nil, err
	}
	cfg.Mode = mode

	return cfg, nil
}

// ParseMode validates a mode name
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeLog, ModeCall:
		return Mode(raw), nil
	default:
		return "", errors.Errorf("config : unknown mode %q (want %q or %q)", raw, ModeLog, ModeCall)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
