package dimensions

import (
	"chart-service/internal/app/contracts"
	"chart-service/internal/pkg/constvars"
	"context"
	"sync"

	"go.uber.org/zap"
)

// Refresher rebuilds cached dimensions for every refresh event on the queue.
type Refresher struct {
	log      *zap.Logger
	queue    contracts.DimensionsRefreshQueue
	usecase  contracts.DimensionUsecase
	stopOnce sync.Once
}

func NewRefresher(log *zap.Logger, queue contracts.DimensionsRefreshQueue, usecase contracts.DimensionUsecase) *Refresher {
	return &Refresher{
		log:     log,
		queue:   queue,
		usecase: usecase,
	}
}

// Start consumes refresh events until ctx is done or the returned stop is called.
// Stop waits for the consume loop to exit, then closes the usecase so no refresh that
// is still in flight writes to the cache afterwards.
func (r *Refresher) Start(ctx context.Context) (stop func(), err error) {
	consumeCtx, cancel := context.WithCancel(ctx)

	events, err := r.queue.Consume(consumeCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	r.log.Info("Dimensions refresher started")

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for event := range events {
			eventCtx := context.WithValue(consumeCtx, constvars.CONTEXT_REQUEST_ID_KEY, event.RequestID)
			started := r.usecase.RefreshDimensions(eventCtx, event.PatientID)
			r.log.Debug("Refresher handled refresh event",
				zap.String(constvars.LoggingRequestIDKey, event.RequestID),
				zap.String(constvars.LoggingPatientIDKey, event.PatientID),
				zap.String("reason", event.Reason),
				zap.Bool("started", started),
			)
		}
	}()

	return func() {
		r.stopOnce.Do(func() {
			cancel()
			<-stopped
			r.usecase.Close()
			r.log.Info("Dimensions refresher stopped")
		})
	}, nil
}
