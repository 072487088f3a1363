package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"phone-dialer/pkg/models"
)

// SubmissionService defines what happens to a submitted phone number
type SubmissionService interface {
	Process(ctx context.Context, submission models.Submission) models.Outcome
}

type logSubmissionService struct {
	logger *logrus.Logger
}

// NewLogSubmissionService only records the submitted number
func NewLogSubmissionService(logger *logrus.Logger) SubmissionService {
	return &logSubmissionService{logger: logger}
}

func (s *logSubmissionService) Process(ctx context.Context, submission models.Submission) models.Outcome {
	s.logger.WithContext(ctx).Infof("Phone Number Submitted: %s", submission.PhoneNumber)
	return models.Outcome{Succeeded: true}
}

type callSubmissionService struct {
	dispatcher CallDispatcher
	logger     *logrus.Logger
}

// NewCallSubmissionService places a voice call to every submitted number
func NewCallSubmissionService(dispatcher CallDispatcher, logger *logrus.Logger) SubmissionService {
	return &callSubmissionService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (s *callSubmissionService) Process(ctx context.Context, submission models.Submission) models.Outcome {
	s.logger.WithContext(ctx).Debug("dispatching call for submission")

	result := s.dispatcher.PlaceCall(ctx, submission.PhoneNumber)
	return models.Outcome{
		Succeeded: result.Placed(),
		Call:      &result,
	}
}
