package ports

import "context"

// Notifier publishes gate outcome events for operational visibility.
// Delivery is best effort; failures are logged by callers, never propagated.
type Notifier interface {
	PublishRaw(ctx context.Context, arn string, payload []byte) error
}
