package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	twclient "github.com/twilio/twilio-go/client"
	"github.com/twilio/twilio-go/twiml"

	"phone-dialer/pkg/clients/twilio"
	"phone-dialer/pkg/models"
	"phone-dialer/pkg/utils"
)

// Twilio error codes that mean the destination number itself is unusable.
// https://www.twilio.com/docs/api/errors
var invalidDestinationCodes = map[int]bool{
	13223: true, // invalid phone number format
	13224: true, // invalid phone number
	21211: true, // invalid 'To' phone number
	21214: true, // 'To' phone number cannot be reached
	21217: true, // phone number does not appear to be valid
	21401: true, // invalid phone number
}

// CallDispatcher asks the provider to place one voice call
type CallDispatcher interface {
	PlaceCall(ctx context.Context, to string) models.CallResult
}

type callDispatcherImpl struct {
	client twilio.Client
	from   string
	twiml  string
	logger *logrus.Logger
}

// NewCallDispatcher creates a dispatcher that calls from the given number and
// speaks message on pickup
func NewCallDispatcher(client twilio.Client, from, message string, logger *logrus.Logger) (CallDispatcher, error) {
	markup, err := SpeechTwiML(message)
	if err != nil {
		return nil, err
	}

	return &callDispatcherImpl{
		client: client,
		from:   from,
		twiml:  markup,
		logger: logger,
	}, nil
}

// SpeechTwiML renders the call-control document that reads message aloud
func SpeechTwiML(message string) (string, error) {
	markup, err := twiml.Voice([]twiml.Element{&twiml.VoiceSay{Message: message}})
	if err != nil {
		return "", errors.Wrap(err, "dispatcher : failed to render twiml")
	}
	return markup, nil
}

// PlaceCall makes exactly one call attempt. There is no retry and no
// deduplication: two calls with the same number place two calls.
func (d *callDispatcherImpl) PlaceCall(ctx context.Context, to string) models.CallResult {
	entry := d.logger.WithContext(ctx).WithField("to", utils.RedactPhone(to))

	sid, err := d.client.CreateCall(to, d.from, d.twiml)
	if err != nil {
		kind := classifyCallError(err)
		entry.WithError(err).WithField("failure", kind).Error("failed to place call")
		return models.CallResult{Failure: kind, Err: err}
	}

	entry.WithField("call_sid", sid).Info("call placed")
	return models.CallResult{CallSID: sid}
}

func classifyCallError(err error) models.FailureKind {
	var restErr *twclient.TwilioRestError
	if !errors.As(err, &restErr) {
		return models.FailureNetworkError
	}
	if invalidDestinationCodes[restErr.Code] {
		return models.FailureInvalidDestination
	}
	return models.FailureProviderRejected
}
