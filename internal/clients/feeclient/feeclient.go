package feeclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/client"
	"github.com/kyolabs/honorary-fee-crank/internal/config"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const (
	pendingFeesPath = "/v1/pools/%s/fees"
	claimPath       = "/v1/pools/%s/claims"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.ClientConfig
}

func NewClient(cfg *config.ClientConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
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

type pendingFeesResponse struct {
	QuoteAmount uint64 `json:"quote_amount,string"`
	BaseAmount  uint64 `json:"base_amount,string"`
}

type claimRequest struct {
	ID          string         `json:"id"`
	Epoch       uint64         `json:"epoch"`
	Destination types.Identity `json:"destination"`
	Amount      uint64         `json:"amount,string"`
}

func (c *Client) PendingFees(ctx context.Context, poolID types.Identity) (types.HarvestedFee, error) {
	type empty struct{}

	call := func() (types.HarvestedFee, error) {
		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf(pendingFeesPath, poolID),
			TemplatePath: fmt.Sprintf(pendingFeesPath, "{pool}"),
		}
		resp, err := client.SendRequest[empty, pendingFeesResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return types.HarvestedFee{}, err
		}
		return types.HarvestedFee{
			QuoteAmount: resp.QuoteAmount,
			BaseAmount:  resp.BaseAmount,
		}, nil
	}

	fee, err := client.CallWithRetry(ctx, call, c.cfg)
	if err != nil {
		return types.HarvestedFee{}, fmt.Errorf("failed to get pending fees for pool %s: %w", poolID, err)
	}
	return fee, nil
}

func (c *Client) Claim(ctx context.Context, instruction types.TransferInstruction) error {
	type empty struct{}

	call := func() (struct{}, error) {
		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf(claimPath, instruction.PoolID),
			TemplatePath: fmt.Sprintf(claimPath, "{pool}"),
			Headers:      map[string]string{"Idempotency-Key": instruction.ID},
		}
		req := &claimRequest{
			ID:          instruction.ID,
			Epoch:       instruction.Epoch,
			Destination: instruction.Destination,
			Amount:      instruction.Amount,
		}
		_, err := client.SendRequest[claimRequest, empty](ctx, c, http.MethodPost, opts, req)
		// the claim was already applied
		if client.StatusCode(err) == http.StatusConflict {
			return struct{}{}, nil
		}
		return struct{}{}, err
	}

	if _, err := client.CallWithRetry(ctx, call, c.cfg); err != nil {
		return fmt.Errorf("failed to claim fees for %s: %w", instruction.ID, err)
	}
	return nil
}
