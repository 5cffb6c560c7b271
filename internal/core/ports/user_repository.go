package ports

import (
	"context"
	"time"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// UserRepository persists user accounts. Emails are matched
// case-insensitively; implementations normalise them to lower case.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByLogin matches the value against username or email.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailAndToken requires an exact match on the stored verification
	// token, which is how consumed tokens are rejected.
	FindByEmailAndToken(ctx context.Context, email, token string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	MarkVerified(ctx context.Context, id string) error
	SetVerificationToken(ctx context.Context, id, token string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	// SetRole reports changed=false when the user already held the role.
	SetRole(ctx context.Context, id, role string) (changed bool, err error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	HasAdmin(ctx context.Context) (bool, error)
}
