package notify

import "context"

// Sink delivers fire-and-forget progress events to interested listeners.
// Implementations may publish to a broker or drop everything (for tests and
// single-node setups). Delivery is best effort: callers log failures and
// never fail the originating request on one.
type Sink interface {
	Publish(ctx context.Context, userID, event string, payload any) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(ctx context.Context, userID, event string, payload any) error {
	return nil
}
