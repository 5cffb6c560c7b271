package ports

import (
	"context"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// SubmitFeedbackInput is the public feedback payload. All four fields are
// required; the email is stored but never echoed back.
type SubmitFeedbackInput struct {
	Name    string
	Email   string
	Message string
	Rating  int
}

type FeedbackService interface {
	Submit(ctx context.Context, in SubmitFeedbackInput) (*domain.Feedback, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}
