package messaging

import (
	"context"
)

// Handler processes one raw message. A returned error is reported through
// onError and does not stop consumption.
type Handler func(msg []byte) error

// Consume subscribes to channel and feeds every message to handler until ctx
// is cancelled or the broker closes the subscription.
func Consume(ctx context.Context, broker Broker, channel string, handler Handler, onError func(error)) error {
	msgChan, err := broker.Subscribe(ctx, channel)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgChan {
			if err := handler(msg); err != nil && onError != nil {
				onError(err)
			}
		}
	}()

	return nil
}
