package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
	"github.com/altarmaker/altarmaker-api/internal/core/ports"
)

// ErrFeedbackInvalid is returned when a submission misses a field or the
// rating is out of range.
var ErrFeedbackInvalid = errors.New("name, email, message and a rating between 1 and 5 are required")

// FeedbackService handles the public feedback form.
type FeedbackService struct {
	repo   ports.FeedbackRepository
	logger zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

// Submit stores a new entry, unapproved by default.
func (s *FeedbackService) Submit(ctx context.Context, in ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" || in.Rating < 1 || in.Rating > 5 {
		return nil, ErrFeedbackInvalid
	}

	fb := &domain.Feedback{
		Name:     in.Name,
		Email:    in.Email,
		Message:  in.Message,
		Rating:   in.Rating,
		Date:     time.Now().UTC(),
		Approved: false,
	}

	created, err := s.repo.Insert(ctx, fb)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("rating", in.Rating).Msg("feedback submitted")
	return created, nil
}

// List returns every entry newest first. Email and raw store id are already
// stripped by the repository projection.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.repo.ListByDateDesc(ctx)
}
