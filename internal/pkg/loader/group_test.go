package loader

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

type recorder struct {
	mu      sync.Mutex
	results []string
	errs    []error
}

func (r *recorder) deliver(result string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	r.errs = append(r.errs, err)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.results...)
}

func blockUntilCancelled(started chan<- struct{}) LoadFunc[string] {
	return func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		return "stale", ctx.Err()
	}
}

func TestGroupDeliversResult(t *testing.T) {
	group := NewGroup[string](0)
	rec := &recorder{}

	started := group.Go(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
		return "fresh", nil
	}, rec.deliver)
	group.Wait()

	assert.True(t, started)
	assert.Equal(t, []string{"fresh"}, rec.snapshot())
	assert.Equal(t, 0, group.InFlight())
}

func TestGroupNewerLoadSupersedesOlder(t *testing.T) {
	group := NewGroup[string](0)
	rec := &recorder{}

	firstStarted := make(chan struct{})
	var firstCtx context.Context
	group.Go(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
		firstCtx = ctx
		close(firstStarted)
		<-ctx.Done()
		return "stale", ctx.Err()
	}, rec.deliver)
	<-firstStarted

	group.Go(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
		return "fresh", nil
	}, rec.deliver)
	group.Wait()

	assert.Equal(t, []string{"fresh"}, rec.snapshot())
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
}

func TestGroupKeysAreIndependent(t *testing.T) {
	group := NewGroup[string](0)
	rec := &recorder{}

	group.Go(context.Background(), "pat-1", func(ctx context.Context) (string, error) { return "one", nil }, rec.deliver)
	group.Go(context.Background(), "pat-2", func(ctx context.Context) (string, error) { return "two", nil }, rec.deliver)
	group.Wait()

	assert.ElementsMatch(t, []string{"one", "two"}, rec.snapshot())
}

func TestGroupCloseSuppressesLateDelivery(t *testing.T) {
	group := NewGroup[string](0)
	rec := &recorder{}

	started := make(chan struct{})
	group.Go(context.Background(), "pat-1", blockUntilCancelled(started), rec.deliver)
	<-started

	group.Close()

	assert.Empty(t, rec.snapshot())
	assert.False(t, group.Go(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
		return "after close", nil
	}, rec.deliver))
	group.Wait()
	assert.Empty(t, rec.snapshot())

	group.Close()
}

func TestGroupCancel(t *testing.T) {
	group := NewGroup[string](0)
	rec := &recorder{}

	started := make(chan struct{})
	group.Go(context.Background(), "pat-1", blockUntilCancelled(started), rec.deliver)
	<-started

	group.Cancel("pat-1")
	group.Wait()

	assert.Empty(t, rec.snapshot())
}

func TestGroupTimeoutDeliversError(t *testing.T) {
	group := NewGroup[string](20 * time.Millisecond)
	rec := &recorder{}

	started := make(chan struct{})
	group.Go(context.Background(), "pat-1", blockUntilCancelled(started), rec.deliver)
	group.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.errs, 1)
	assert.True(t, errors.Is(rec.errs[0], context.DeadlineExceeded))
}

func TestGroupIgnoresParentCancellation(t *testing.T) {
	group := NewGroup[string](0)
	rec := &recorder{}

	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "v"))
	cancel()

	group.Go(parent, "pat-1", func(ctx context.Context) (string, error) {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		value, _ := ctx.Value(ctxKey{}).(string)
		return value, nil
	}, rec.deliver)
	group.Wait()

	assert.Equal(t, []string{"v"}, rec.snapshot())
}

func TestGroupFill(t *testing.T) {
	t.Run("Stores Result", func(t *testing.T) {
		group := NewGroup[string](0)
		rec := &recorder{}

		result, err := group.Fill(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
			return "fresh", nil
		}, func(result string) { rec.deliver(result, nil) })

		require.NoError(t, err)
		assert.Equal(t, "fresh", result)
		assert.Equal(t, []string{"fresh"}, rec.snapshot())
		assert.Empty(t, group.entries)
	})

	t.Run("Cancel During Load Skips Store", func(t *testing.T) {
		group := NewGroup[string](0)
		rec := &recorder{}

		loading := make(chan struct{})
		release := make(chan struct{})
		done := make(chan string)
		go func() {
			result, _ := group.Fill(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
				close(loading)
				<-release
				return "before write", nil
			}, func(result string) { rec.deliver(result, nil) })
			done <- result
		}()
		<-loading

		group.Cancel("pat-1")
		close(release)

		assert.Equal(t, "before write", <-done)
		assert.Empty(t, rec.snapshot())
	})

	t.Run("Newer Go Skips Store", func(t *testing.T) {
		group := NewGroup[string](0)
		rec := &recorder{}

		loading := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			group.Fill(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
				close(loading)
				<-release
				return "older", nil
			}, func(result string) { rec.deliver(result, nil) })
		}()
		<-loading

		group.Go(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
			return "newer", nil
		}, rec.deliver)
		require.Eventually(t, func() bool {
			return len(rec.snapshot()) == 1
		}, time.Second, 5*time.Millisecond)
		close(release)
		<-done
		group.Wait()

		assert.Equal(t, []string{"newer"}, rec.snapshot())
	})

	t.Run("Load Error Is Not Stored", func(t *testing.T) {
		group := NewGroup[string](0)
		rec := &recorder{}

		_, err := group.Fill(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
			return "", errors.New("fhir down")
		}, func(result string) { rec.deliver(result, nil) })

		require.EqualError(t, err, "fhir down")
		assert.Empty(t, rec.snapshot())
	})

	t.Run("After Close Returns Result Without Storing", func(t *testing.T) {
		group := NewGroup[string](0)
		rec := &recorder{}
		group.Close()

		result, err := group.Fill(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
			return "fresh", nil
		}, func(result string) { rec.deliver(result, nil) })

		require.NoError(t, err)
		assert.Equal(t, "fresh", result)
		assert.Empty(t, rec.snapshot())
	})
}

func TestGroupSlowDeliveryOnlyBlocksItsKey(t *testing.T) {
	group := NewGroup[string](0)
	rec := &recorder{}

	delivering := make(chan struct{})
	release := make(chan struct{})
	group.Go(context.Background(), "pat-1", func(ctx context.Context) (string, error) {
		return "slow", nil
	}, func(result string, err error) {
		close(delivering)
		<-release
		rec.deliver(result, err)
	})
	<-delivering

	otherKeyDone := make(chan struct{})
	go func() {
		defer close(otherKeyDone)
		group.Go(context.Background(), "pat-2", func(ctx context.Context) (string, error) {
			return "fast", nil
		}, rec.deliver)
		group.InFlight()
		group.Cancel("pat-3")
	}()

	select {
	case <-otherKeyDone:
	case <-time.After(time.Second):
		t.Fatal("operations on other keys waited for a slow delivery")
	}
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"fast"}, rec.snapshot())

	cancelled := make(chan struct{})
	go func() {
		defer close(cancelled)
		group.Cancel("pat-1")
	}()

	select {
	case <-cancelled:
		t.Fatal("Cancel returned while a delivery for its key was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-cancelled
	group.Wait()

	assert.ElementsMatch(t, []string{"fast", "slow"}, rec.snapshot())
	assert.Empty(t, group.entries)
}
