package ports

import "context"

// Mailer delivers outbound notifications. Both sends are best-effort from
// the caller's point of view: delivery failure never fails the request that
// triggered it.
type Mailer interface {
	SendVerification(ctx context.Context, recipient, token string) error
	SendWelcome(ctx context.Context, recipient, username string) error
}

// MailThrottle rate-limits verification mail per recipient address.
type MailThrottle interface {
	// Allow reports whether a mail to this address may be sent now, and
	// records the attempt when it may.
	Allow(ctx context.Context, email string) (bool, error)
}
