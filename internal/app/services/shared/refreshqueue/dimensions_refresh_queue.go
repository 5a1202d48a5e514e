package refreshqueue

import (
	"chart-service/internal/app/contracts"
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/exceptions"
	"context"
	"errors"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errNotConfirmed = errors.New("message not confirmed")

// service publishes and consumes dimensions refresh events on a durable queue. Publishing
// and consuming use separate channels so a slow consumer never blocks publisher confirms.
type service struct {
	publishCh channel
	consumeCh channel
	queue     string
	log       *zap.Logger
}

func NewDimensionsRefreshQueue(conn *amqp.Connection, queue string, prefetch int, log *zap.Logger) (contracts.DimensionsRefreshQueue, error) {
	publishCh, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = publishCh.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	if err := publishCh.Confirm(false); err != nil {
		return nil, err
	}

	consumeCh, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := consumeCh.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	return newService(&amqpChannel{ch: publishCh}, &amqpChannel{ch: consumeCh}, queue, log), nil
}

func newService(publishCh, consumeCh channel, queue string, log *zap.Logger) *service {
	return &service{
		publishCh: publishCh,
		consumeCh: consumeCh,
		queue:     queue,
		log:       log,
	}
}

// Publish sends event as a persistent message and waits for the broker confirm of that
// message. A confirm that arrives after ctx is done is discarded with its message.
func (s *service) Publish(ctx context.Context, event *models.DimensionsRefreshEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("DimensionsRefreshQueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, event.PatientID),
		zap.String(constvars.LoggingQueueNameKey, s.queue),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Headers: amqp.Table{
			"message_type": "JSON",
		},
	}

	confirm, err := s.publishCh.Publish(ctx, s.queue, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queue)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queue)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishMessage(errNotConfirmed, s.queue)
	}
	return nil
}

// Consume streams decoded events until ctx is done or the channel closes. Each delivery
// is acked once handed over; undecodable payloads are acked and dropped so they cannot
// loop forever.
func (s *service) Consume(ctx context.Context) (<-chan models.DimensionsRefreshEvent, error) {
	deliveries, err := s.consumeCh.Consume(ctx, s.queue)
	if err != nil {
		return nil, exceptions.ErrRabbitMQConsumeQueue(err, s.queue)
	}

	events := make(chan models.DimensionsRefreshEvent)
	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}

				var event models.DimensionsRefreshEvent
				if err := json.Unmarshal(delivery.Body, &event); err != nil || event.PatientID == "" {
					s.log.Error("DimensionsRefreshQueue.Consume dropping malformed message",
						zap.String(constvars.LoggingQueueNameKey, s.queue),
						zap.Error(err),
					)
					_ = delivery.Ack(false)
					continue
				}

				select {
				case events <- event:
					_ = delivery.Ack(false)
				case <-ctx.Done():
					_ = delivery.Nack(false, true)
					return
				}
			}
		}
	}()

	return events, nil
}

func (s *service) Close() error {
	err := s.consumeCh.Close()
	if publishErr := s.publishCh.Close(); err == nil {
		err = publishErr
	}
	return err
}
