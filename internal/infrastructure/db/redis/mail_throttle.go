package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleWindow = time.Minute

// MailThrottle caps verification mail to one per address per minute.
// Key format: verify-mail:<email>
type MailThrottle struct {
	client *redis.Client
}

func NewMailThrottle(client *redis.Client) *MailThrottle {
	return &MailThrottle{client: client}
}

// Allow atomically claims the window for this address. The first caller in
// a window gets true; everyone else false until the key expires.
func (t *MailThrottle) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), "1", throttleWindow).Result()
	if err != nil {
		return false, fmt.Errorf("mail throttle: %w", err)
	}
	return ok, nil
}

func (t *MailThrottle) key(email string) string {
	return fmt.Sprintf("verify-mail:%s", email)
}
