package promotions

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/metrics"
)

type lifecycleRepository interface {
	ActivateDue(ctx context.Context, now time.Time) (int64, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// TickResult reports what one lifecycle pass changed.
type TickResult struct {
	Activated   int64
	Deactivated int64
}

// LifecycleJobParams configure the scheduled promotion work.
type LifecycleJobParams struct {
	Logger  *logger.Logger
	Repo    lifecycleRepository
	Metrics *metrics.JobMetrics
}

// NewLifecycleJob constructs the promotion lifecycle job. Each run is
// idempotent: both sweeps compare the stored windows against wall-clock
// time, so a repeated run with no time elapsed changes nothing.
func NewLifecycleJob(params LifecycleJobParams) (*LifecycleJob, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("promotion repository required")
	}
	return &LifecycleJob{
		logg:    params.Logger,
		repo:    params.Repo,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

// LifecycleJob flips promotions between active and inactive as their time
// windows open and close.
type LifecycleJob struct {
	logg    *logger.Logger
	repo    lifecycleRepository
	metrics *metrics.JobMetrics
	now     func() time.Time
}

func (j *LifecycleJob) Name() string { return "promotion-lifecycle" }

// Run executes one tick. Both sweeps are attempted even when the first
// fails; errors are combined.
func (j *LifecycleJob) Run(ctx context.Context) error {
	_, err := j.Tick(ctx)
	return err
}

// Tick runs the activate and deactivate sweeps against a single observation
// of the clock and returns the row counts.
func (j *LifecycleJob) Tick(ctx context.Context) (TickResult, error) {
	now := j.now().UTC()
	var result TickResult
	var errs []error

	activated, err := j.repo.ActivateDue(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("activate due promotions: %w", err))
	} else {
		result.Activated = activated
		j.metrics.AddActivated(activated)
	}

	deactivated, err := j.repo.DeactivateExpired(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("deactivate expired promotions: %w", err))
	} else {
		result.Deactivated = deactivated
		j.metrics.AddDeactivated(deactivated)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"activated":   result.Activated,
		"deactivated": result.Deactivated,
	})
	j.logg.Info(logCtx, "promotion lifecycle tick complete")
	return result, multierr.Combine(errs...)
}
