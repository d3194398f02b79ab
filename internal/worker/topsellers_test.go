package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront/internal/worker"
)

type fakeCatalog struct {
	mu     sync.Mutex
	limits []int
}

func (f *fakeCatalog) RefreshTopSellers(_ context.Context, limit int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	return nil
}

func (f *fakeCatalog) refreshed() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.limits...)
}

func TestRefresherRunsImmediately(t *testing.T) {
	rq := require.New(t)

	catalog := &fakeCatalog{}
	refresher := worker.NewTopSellersRefresher(catalog).
		WithInterval(time.Hour).
		WithPageLimits(12, 24)

	rq.NoError(refresher.Start(context.Background()))
	defer refresher.Stop()

	rq.Eventually(func() bool {
		return len(catalog.refreshed()) == 2
	}, time.Second, 10*time.Millisecond)

	rq.Equal([]int{12, 24}, catalog.refreshed())
}

func TestRefresherStartStop(t *testing.T) {
	rq := require.New(t)

	refresher := worker.NewTopSellersRefresher(&fakeCatalog{}).WithInterval(time.Hour)

	rq.False(refresher.IsRunning())
	rq.NoError(refresher.Start(context.Background()))
	rq.True(refresher.IsRunning())

	rq.Error(refresher.Start(context.Background()))

	refresher.Stop()
	rq.False(refresher.IsRunning())

	// Stopping an idle refresher is a no-op.
	refresher.Stop()
}

func TestRefresherTicks(t *testing.T) {
	rq := require.New(t)

	catalog := &fakeCatalog{}
	refresher := worker.NewTopSellersRefresher(catalog).
		WithInterval(20 * time.Millisecond)

	rq.NoError(refresher.Start(context.Background()))
	defer refresher.Stop()

	rq.Eventually(func() bool {
		return len(catalog.refreshed()) >= 3
	}, time.Second, 10*time.Millisecond)
}
