package dimensions

import (
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRefresher(t *testing.T) {
	t.Run("Refreshes Each Event With Its Request ID", func(t *testing.T) {
		queue := new(MockRefreshQueue)
		usecase := new(MockDimensionUsecase)

		events := make(chan models.DimensionsRefreshEvent, 2)
		queue.On("Consume", mock.Anything).Return((<-chan models.DimensionsRefreshEvent)(events), nil).Once()

		handled := make(chan string, 2)
		usecase.On("RefreshDimensions", mock.MatchedBy(func(ctx context.Context) bool {
			requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			return requestID == "req-9"
		}), mock.Anything).
			Run(func(args mock.Arguments) { handled <- args.String(1) }).
			Return(true)
		usecase.On("Close").Return().Once()

		stop, err := NewRefresher(zap.NewNop(), queue, usecase).Start(context.Background())
		require.NoError(t, err)

		events <- models.DimensionsRefreshEvent{PatientID: "pat-1", Reason: constvars.RefreshReasonRecorded, RequestID: "req-9"}
		events <- models.DimensionsRefreshEvent{PatientID: "pat-2", Reason: constvars.RefreshReasonDeleted, RequestID: "req-9"}

		for _, expected := range []string{"pat-1", "pat-2"} {
			select {
			case patientID := <-handled:
				assert.Equal(t, expected, patientID)
			case <-time.After(time.Second):
				t.Fatalf("event for %s was not handled", expected)
			}
		}

		close(events)
		stop()
		stop()

		usecase.AssertExpectations(t)
		usecase.AssertNumberOfCalls(t, "Close", 1)
	})

	t.Run("Stop Cancels Consumption", func(t *testing.T) {
		queue := new(MockRefreshQueue)
		usecase := new(MockDimensionUsecase)

		var consumeCtx context.Context
		events := make(chan models.DimensionsRefreshEvent)
		queue.On("Consume", mock.Anything).
			Run(func(args mock.Arguments) {
				consumeCtx = args.Get(0).(context.Context)
				go func() {
					<-consumeCtx.Done()
					close(events)
				}()
			}).
			Return((<-chan models.DimensionsRefreshEvent)(events), nil).Once()
		usecase.On("Close").Return().Once()

		stop, err := NewRefresher(zap.NewNop(), queue, usecase).Start(context.Background())
		require.NoError(t, err)

		stop()

		assert.ErrorIs(t, consumeCtx.Err(), context.Canceled)
		usecase.AssertExpectations(t)
		usecase.AssertNotCalled(t, "RefreshDimensions", mock.Anything, mock.Anything)
	})

	t.Run("Consume Failure", func(t *testing.T) {
		queue := new(MockRefreshQueue)
		usecase := new(MockDimensionUsecase)
		queue.On("Consume", mock.Anything).
			Return(nil, exceptions.ErrRabbitMQConsumeQueue(errors.New("channel closed"), constvars.QueueDimensionsRefresh)).Once()

		stop, err := NewRefresher(zap.NewNop(), queue, usecase).Start(context.Background())

		require.Error(t, err)
		assert.Nil(t, stop)
		usecase.AssertNotCalled(t, "Close")
	})
}
