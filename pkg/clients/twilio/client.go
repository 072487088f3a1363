package twilio

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client defines the interface for placing voice calls through the Twilio REST API
type Client interface {
	CreateCall(to, from, twiml string) (string, error)
}

// callCreator is the subset of the Twilio API service the client needs
type callCreator interface {
	CreateCall(params *openapi.CreateCallParams) (*openapi.ApiV2010Call, error)
}

type clientImpl struct {
	api    callCreator
	logger *logrus.Logger
}

// NewClient creates a new Twilio client
func NewClient(accountSid, authToken string, logger *logrus.Logger) Client {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return newClientWithAPI(client.Api, logger)
}

func newClientWithAPI(api callCreator, logger *logrus.Logger) *clientImpl {
	return &clientImpl{
		api:    api,
		logger: logger,
	}
}

func (c *clientImpl) CreateCall(to, from, twiml string) (string, error) {
	params := &openapi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetTwiml(twiml)

	resp, err := c.api.CreateCall(params)
	if err != nil {
		return "", fmt.Errorf("error creating call: %w", err)
	}

	if resp == nil || resp.Sid == nil || *resp.Sid == "" {
		return "", fmt.Errorf("error creating call: response carries no call sid")
	}

	c.logger.WithField("call_sid", *resp.Sid).Debug("twilio accepted call")

	return *resp.Sid, nil
}
