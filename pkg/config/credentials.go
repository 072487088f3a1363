package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvAccountSID  = "TWILIO_ACCOUNT_SID"
	EnvAuthToken   = "TWILIO_AUTH_TOKEN"
	EnvPhoneNumber = "TWILIO_PHONE_NUMBER"
)

var ErrMissingCredential = errors.New("missing twilio credential")

// CredentialSource resolves Twilio credentials once at startup
type CredentialSource interface {
	Name() string
	Load() (TwilioCredentials, error)
}

// EnvSource reads credentials from process environment variables
type EnvSource struct{}

func (EnvSource) Name() string { return "env" }

func (EnvSource) Load() (TwilioCredentials, error) {
	creds := TwilioCredentials{
		AccountSID:  os.Getenv(EnvAccountSID),
		AuthToken:   os.Getenv(EnvAuthToken),
		PhoneNumber: os.Getenv(EnvPhoneNumber),
	}
	return creds, creds.Validate()
}

// FileSource reads credentials from a JSON, YAML or TOML secrets file.
// The format follows the file extension.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load() (TwilioCredentials, error) {
	v := viper.New()
	v.SetConfigFile(s.Path)

	if err := v.ReadInConfig(); err != nil {
		return TwilioCredentials{}, errors.Wrapf(err, "config : failed to read secrets file %s", s.Path)
	}

	var creds TwilioCredentials
	if err := v.Unmarshal(&creds); err != nil {
		return TwilioCredentials{}, errors.Wrapf(err, "config : failed to decode secrets file %s", s.Path)
	}

	return creds, creds.Validate()
}

// NewCredentialSource picks a source by name: "env" or "file"
func NewCredentialSource(kind, path string) (CredentialSource, error) {
	switch kind {
	case "env":
		return EnvSource{}, nil
	case "file":
		if path == "" {
			return nil, errors.New("config : file credential source needs a path")
		}
		return FileSource{Path: path}, nil
	default:
		return nil, errors.Errorf("config : unknown credential source %q", kind)
	}
}

// Validate reports every empty credential field
func (c TwilioCredentials) Validate() error {
	var missing []string
	if c.AccountSID == "" {
		missing = append(missing, EnvAccountSID)
	}
	if c.AuthToken == "" {
		missing = append(missing, EnvAuthToken)
	}
	if c.PhoneNumber == "" {
		missing = append(missing, EnvPhoneNumber)
	}

	if len(missing) > 0 {
		return errors.Wrap(ErrMissingCredential, strings.Join(missing, ", "))
	}
	return nil
}
