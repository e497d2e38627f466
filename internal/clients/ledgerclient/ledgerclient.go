package ledgerclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/client"
	"github.com/kyolabs/honorary-fee-crank/internal/config"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/metrics"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const (
	// The epoch number keys a snapshot the ledger freezes on first read, so every
	// page of one epoch sees the same balances however long the epoch takes.
	snapshotPath          = "/v1/pools/%s/epochs/%d/snapshot"
	snapshotTemplatePath  = "/v1/pools/{pool}/epochs/{epoch}/snapshot"
	investorsPath         = "/v1/pools/%s/epochs/%d/investors"
	investorsTemplatePath = "/v1/pools/{pool}/epochs/{epoch}/investors"

	breakerName             = "ledger"
	breakerOpenTimeout      = 30 * time.Second
	breakerFailureThreshold = 5
)

type Client struct {
	httpClient *http.Client
	cfg        *config.ClientConfig
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(cfg *config.ClientConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		breaker:    newBreaker(),
	}
}

func newBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    breakerName,
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// a rejected request means the ledger is up
			return err == nil || !client.IsRetryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("ledger circuit breaker changed state")
			metrics.RecordCircuitBreakerState(name, int(to))
		},
	})
}

func (c *Client) GetBaseURL() string {
	return c.cfg.URL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

type snapshotResponse struct {
	TotalLocked    uint64 `json:"total_locked,string"`
	TotalInvestors uint32 `json:"total_investors"`
}

type investorResponse struct {
	Identity     types.Identity `json:"identity"`
	LockedAmount uint64         `json:"locked_amount,string"`
}

type investorPageResponse struct {
	StartIndex     uint32             `json:"start_index"`
	Investors      []investorResponse `json:"investors"`
	TotalLocked    uint64             `json:"total_locked,string"`
	TotalInvestors uint32             `json:"total_investors"`
}

func (c *Client) GetEpochSnapshot(ctx context.Context, poolID types.Identity, epoch uint64) (EpochSnapshot, error) {
	type empty struct{}

	call := func() (EpochSnapshot, error) {
		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf(snapshotPath, poolID, epoch),
			TemplatePath: snapshotTemplatePath,
		}
		resp, err := client.SendRequest[empty, snapshotResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return EpochSnapshot{}, err
		}
		return EpochSnapshot{
			TotalLockedForEpoch: resp.TotalLocked,
			TotalInvestors:      resp.TotalInvestors,
		}, nil
	}

	snapshot, err := withBreaker(c.breaker, func() (EpochSnapshot, error) {
		return client.CallWithRetry(ctx, call, c.cfg)
	})
	if err != nil {
		return EpochSnapshot{}, fmt.Errorf("failed to get snapshot of epoch %d for pool %s: %w", epoch, poolID, err)
	}
	return snapshot, nil
}

func (c *Client) GetInvestorPage(
	ctx context.Context, poolID types.Identity, epoch uint64, start, limit uint32,
) (types.InvestorPage, error) {
	type empty struct{}

	call := func() (types.InvestorPage, error) {
		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf(investorsPath, poolID, epoch) + fmt.Sprintf("?start=%d&limit=%d", start, limit),
			TemplatePath: investorsTemplatePath,
		}
		resp, err := client.SendRequest[empty, investorPageResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return types.InvestorPage{}, err
		}
		if resp.StartIndex != start {
			return types.InvestorPage{}, types.NewErrorWithMsg(
				types.InvalidInvestorData,
				"ledger returned a page starting at %d, requested %d", resp.StartIndex, start,
			)
		}

		records := make([]types.InvestorRecord, len(resp.Investors))
		for i, inv := range resp.Investors {
			records[i] = types.InvestorRecord{
				Identity:     inv.Identity,
				LockedAmount: inv.LockedAmount,
			}
		}
		return types.InvestorPage{
			StartIndex:          resp.StartIndex,
			Records:             records,
			TotalLockedForEpoch: resp.TotalLocked,
			TotalInvestors:      resp.TotalInvestors,
		}, nil
	}

	page, err := withBreaker(c.breaker, func() (types.InvestorPage, error) {
		return client.CallWithRetry(ctx, call, c.cfg)
	})
	if err != nil {
		return types.InvestorPage{}, fmt.Errorf(
			"failed to get investors %d+%d of epoch %d for pool %s: %w", start, limit, epoch, poolID, err,
		)
	}
	return page, nil
}

func withBreaker[T any](cb *gobreaker.CircuitBreaker, f func() (T, error)) (T, error) {
	result, err := cb.Execute(func() (any, error) {
		return f()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}
