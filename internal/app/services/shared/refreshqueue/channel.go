package refreshqueue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// confirmation is the broker confirm of one published message.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// channel is the part of an AMQP channel the queue service uses.
type channel interface {
	Publish(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error)
	Consume(ctx context.Context, queue string) (<-chan amqp.Delivery, error)
	Close() error
}

type amqpChannel struct {
	ch *amqp.Channel
}

// Publish sends msg to queue through the default exchange. The channel must be in
// confirm mode, otherwise there is no confirmation to wait on.
func (c *amqpChannel) Publish(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error) {
	confirm, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, msg)
	if err != nil {
		return nil, err
	}
	if confirm == nil {
		return nil, errNotConfirmed
	}
	return confirm, nil
}

func (c *amqpChannel) Consume(ctx context.Context, queue string) (<-chan amqp.Delivery, error) {
	return c.ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
}

func (c *amqpChannel) Close() error {
	return c.ch.Close()
}
