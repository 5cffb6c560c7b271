package ports

import (
	"context"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// FeedbackRepository persists public feedback entries.
type FeedbackRepository interface {
	Insert(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error)
	// ListByDateDesc returns all entries newest first.
	ListByDateDesc(ctx context.Context) ([]domain.Feedback, error)
}
