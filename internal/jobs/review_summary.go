package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"storefront/pkg/contextx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TypeRefreshReviewSummary recomputes the denormalized rating aggregate of
// one product after a review lands.
const TypeRefreshReviewSummary = "review:refresh_summary"

const refreshSummaryMaxRetry = 5

type refreshSummaryPayload struct {
	ProductID int64 `json:"product_id"`
}

// Enqueuer schedules storefront background tasks over asynq.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueRefreshSummary(ctx context.Context, productID int64) error {
	payload, err := json.Marshal(refreshSummaryPayload{ProductID: productID})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	task := asynq.NewTask(TypeRefreshReviewSummary, payload)

	if _, err := e.client.EnqueueContext(ctx, task, asynq.MaxRetry(refreshSummaryMaxRetry)); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

// SummaryRefresher is the slice of the review repository the handler needs.
type SummaryRefresher interface {
	RefreshSummary(ctx context.Context, productID int64) error
}

// HandleRefreshSummary returns the asynq handler for TypeRefreshReviewSummary.
func HandleRefreshSummary(repo SummaryRefresher) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload refreshSummaryPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("json.Unmarshal: %w", err)
		}

		if err := repo.RefreshSummary(ctx, payload.ProductID); err != nil {
			return fmt.Errorf("repo.RefreshSummary: %w", err)
		}

		logger(ctx).Info("review summary refreshed", "product_id", payload.ProductID)

		return nil
	}
}
