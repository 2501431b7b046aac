package application

import "context"

// Publisher enqueues email jobs for the delivery worker. Satisfied by
// helpers.RabbitPublisher; tests substitute a capture fake.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
