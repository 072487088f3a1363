package services

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twclient "github.com/twilio/twilio-go/client"

	"phone-dialer/pkg/models"
)

type createdCall struct {
	to, from, twiml string
}

type fakeTwilio struct {
	calls []createdCall
	sid   string
	err   error
}

func (f *fakeTwilio) CreateCall(to, from, twiml string) (string, error) {
	f.calls = append(f.calls, createdCall{to: to, from: from, twiml: twiml})
	if f.err != nil {
		return "", f.err
	}
	return f.sid, nil
}

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSpeechTwiML(t *testing.T) {
	markup, err := SpeechTwiML("Hello there")
	require.NoError(t, err)
	assert.Contains(t, markup, "<Response>")
	assert.Contains(t, markup, "<Say>Hello there</Say>")
}

func TestPlaceCallSuccess(t *testing.T) {
	fake := &fakeTwilio{sid: "CA0001"}
	d, err := NewCallDispatcher(fake, "+15550000000", "Hello there", silentLogger())
	require.NoError(t, err)

	result := d.PlaceCall(context.Background(), "+15551234567")
	assert.True(t, result.Placed())
	assert.Equal(t, "CA0001", result.CallSID)
	assert.Equal(t, models.FailureNone, result.Failure)
	assert.NoError(t, result.Err)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "+15551234567", fake.calls[0].to)
	assert.Equal(t, "+15550000000", fake.calls[0].from)
	assert.Contains(t, fake.calls[0].twiml, "<Say>Hello there</Say>")
}

func TestPlaceCallFailureKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.FailureKind
	}{
		{
			"invalid destination",
			errors.Wrap(&twclient.TwilioRestError{Code: 21211, Status: 400}, "error creating call"),
			models.FailureInvalidDestination,
		},
		{
			"auth rejected",
			errors.Wrap(&twclient.TwilioRestError{Code: 20003, Status: 401}, "error creating call"),
			models.FailureProviderRejected,
		},
		{
			"network",
			errors.Wrap(&net.OpError{Op: "dial", Err: errors.New("connection refused")}, "error creating call"),
			models.FailureNetworkError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewCallDispatcher(&fakeTwilio{err: tt.err}, "+15550000000", "hi", silentLogger())
			require.NoError(t, err)

			result := d.PlaceCall(context.Background(), "+15551234567")
			assert.False(t, result.Placed())
			assert.Empty(t, result.CallSID)
			assert.Equal(t, tt.want, result.Failure)
			assert.Error(t, result.Err)
		})
	}
}

func TestPlaceCallNoDeduplication(t *testing.T) {
	fake := &fakeTwilio{sid: "CA0001"}
	d, err := NewCallDispatcher(fake, "+15550000000", "hi", silentLogger())
	require.NoError(t, err)

	d.PlaceCall(context.Background(), "+15551234567")
	d.PlaceCall(context.Background(), "+15551234567")

	assert.Len(t, fake.calls, 2)
}

func TestPlaceCallDoesNotLogRawNumber(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	d, err := NewCallDispatcher(&fakeTwilio{sid: "CA0001"}, "+15550000000", "hi", logger)
	require.NoError(t, err)
	d.PlaceCall(context.Background(), "+15551234567")

	assert.Contains(t, buf.String(), "CA0001")
	assert.NotContains(t, buf.String(), "5551234567")
}

func TestLogSubmissionService(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	outcome := NewLogSubmissionService(logger).Process(context.Background(), models.Submission{PhoneNumber: "+15551234567"})
	assert.True(t, outcome.Succeeded)
	assert.Nil(t, outcome.Call)
	assert.Contains(t, buf.String(), "Phone Number Submitted: +15551234567")
}

func TestCallSubmissionService(t *testing.T) {
	fake := &fakeTwilio{sid: "CA0001"}
	d, err := NewCallDispatcher(fake, "+15550000000", "hi", silentLogger())
	require.NoError(t, err)
	svc := NewCallSubmissionService(d, silentLogger())

	outcome := svc.Process(context.Background(), models.Submission{PhoneNumber: "+15551234567"})
	assert.True(t, outcome.Succeeded)
	require.NotNil(t, outcome.Call)
	assert.Equal(t, "CA0001", outcome.Call.CallSID)

	fake.err = errors.New("boom")
	outcome = svc.Process(context.Background(), models.Submission{})
	assert.False(t, outcome.Succeeded)
	require.NotNil(t, outcome.Call)
	assert.Empty(t, outcome.Call.CallSID)
	assert.Equal(t, "", fake.calls[1].to)
}
