package client

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/kyolabs/honorary-fee-crank/internal/config"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/metrics"
	"github.com/kyolabs/honorary-fee-crank/internal/utils"
)

// CallWithRetry retries call with exponential backoff while the error is retryable.
func CallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.ClientConfig,
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("client call failed, retrying")
		}))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// RunWithMetrics records the latency of f under the name of the calling method.
func RunWithMetrics[T any](clientName string, f func() (T, error)) (T, error) {
	method := utils.GetFunctionName(1)
	startTime := time.Now()
	result, err := f()
	metrics.RecordClientLatency(time.Since(startTime), clientName, method, err != nil)
	return result, err
}
