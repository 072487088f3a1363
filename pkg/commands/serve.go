package commands

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"phone-dialer/pkg/api"
	"phone-dialer/pkg/clients/twilio"
	"phone-dialer/pkg/config"
	"phone-dialer/pkg/services"
)

type Serve struct {
	Logger *logrus.Logger
}

type serveFlags struct {
	mode        string
	host        string
	port        int
	secrets     string
	secretsFile string
}

func (cmd Serve) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	flags := serveFlags{}

	c := &cobra.Command{
		Use:   "serve",
		Short: "serve the phone number form",
		RunE: func(c *cobra.Command, _ []string) error {
			if err := applyFlags(c, flags, cfg); err != nil {
				return err
			}
			cmd.main(ctx, cfg, flags)
			return nil
		},
	}

	c.Flags().StringVar(&flags.mode, "mode", string(cfg.Mode), "what to do with a submitted number: log or call")
	c.Flags().StringVar(&flags.host, "host", cfg.HTTP.Host, "interface to listen on")
	c.Flags().IntVar(&flags.port, "port", cfg.HTTP.Port, "port to listen on")
	c.Flags().StringVar(&flags.secrets, "secrets", "env", "where twilio credentials come from: env or file")
	c.Flags().StringVar(&flags.secretsFile, "secrets-file", "secrets.json", "secrets file used with --secrets=file")

	return c
}

// applyFlags copies explicitly set flags over the environment config
func applyFlags(c *cobra.Command, flags serveFlags, cfg *config.Config) error {
	if c.Flags().Changed("mode") {
		mode, err := config.ParseMode(flags.mode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}
	if c.Flags().Changed("host") {
		cfg.HTTP.Host = flags.host
	}
	if c.Flags().Changed("port") {
		cfg.HTTP.Port = flags.port
	}
	return nil
}

func (cmd Serve) main(ctx context.Context, cfg *config.Config, flags serveFlags) {
	var source config.CredentialSource
	if cfg.Mode == config.ModeCall {
		var err error
		source, err = config.NewCredentialSource(flags.secrets, flags.secretsFile)
		if err != nil {
			cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "serve : invalid credential source"))
			return
		}
	}

	submissionService, err := buildSubmissionService(cfg, source, cmd.Logger)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "serve : failed to set up submission handling"))
		return
	}

	server := api.New(cfg.AppEnv, cmd.Logger)
	server.SetupRoutes(api.NewHandlers(submissionService, cmd.Logger))

	if err := server.Serve(ctx, fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)); err != nil {
		cmd.Logger.Fatal(err)
	}
}

// buildSubmissionService wires the action for the configured mode. In call
// mode the credentials are resolved here, once, and the twilio client is
// shared by every request.
func buildSubmissionService(cfg *config.Config, source config.CredentialSource, logger *logrus.Logger) (services.SubmissionService, error) {
	if cfg.Mode != config.ModeCall {
		logger.Info("running in log mode")
		return services.NewLogSubmissionService(logger), nil
	}

	if source == nil {
		return nil, errors.New("serve : call mode needs a credential source")
	}

	creds, err := source.Load()
	if err != nil {
		return nil, errors.Wrapf(err, "serve : failed to load credentials from %s", source.Name())
	}
	cfg.Twilio = creds

	client := twilio.NewClient(creds.AccountSID, creds.AuthToken, logger)
	dispatcher, err := services.NewCallDispatcher(client, creds.PhoneNumber, cfg.CallMessage, logger)
	if err != nil {
		return nil, err
	}

	logger.WithField("credentials", source.Name()).Info("running in call mode")
	return services.NewCallSubmissionService(dispatcher, logger), nil
}
