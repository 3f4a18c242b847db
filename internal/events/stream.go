package events

import "context"

// Stream adapts the package-level publisher to the controller's event
// interface.
type Stream struct{}

func (Stream) Publish(ctx context.Context, taskID, userID, action string) {
	Publish(ctx, taskID, userID, action)
}
