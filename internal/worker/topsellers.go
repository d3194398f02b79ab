package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/pkg/contextx"
	"storefront/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type CatalogService interface {
	RefreshTopSellers(ctx context.Context, limit int) error
}

// TopSellersRefresher periodically recomputes the weekly top-sellers ranking
// and overwrites the cached page, so page loads never pay for the aggregation.
type TopSellersRefresher struct {
	catalog    CatalogService
	interval   time.Duration
	pageLimits []int

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewTopSellersRefresher(catalog CatalogService) *TopSellersRefresher {
	return &TopSellersRefresher{
		catalog:    catalog,
		interval:   5 * time.Minute,
		pageLimits: []int{12},
	}
}

func (w *TopSellersRefresher) WithInterval(interval time.Duration) *TopSellersRefresher {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

// WithPageLimits sets the page sizes kept warm in the cache.
func (w *TopSellersRefresher) WithPageLimits(limits ...int) *TopSellersRefresher {
	if len(limits) > 0 {
		w.pageLimits = limits
	}
	return w
}

func (w *TopSellersRefresher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("refresher is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(runCtx).Error("refresher stopped", logx.Error(err))
		}
	}()

	return nil
}

func (w *TopSellersRefresher) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *TopSellersRefresher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// Run refreshes once immediately, then on every tick until the context ends.
func (w *TopSellersRefresher) Run(ctx context.Context) error {
	logger(ctx).Info("top sellers refresher started", "interval", w.interval.String())

	w.refreshAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("top sellers refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *TopSellersRefresher) refreshAll(ctx context.Context) {
	for _, limit := range w.pageLimits {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.catalog.RefreshTopSellers(ctx, limit); err != nil {
			logger(ctx).Error("refresh failed", "limit", limit, logx.Error(err))
			continue
		}
	}
}
