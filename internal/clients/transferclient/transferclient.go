package transferclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/client"
	"github.com/kyolabs/honorary-fee-crank/internal/config"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const transfersPath = "/v1/transfers"

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

type transferRequest struct {
	ID          string                `json:"id"`
	Pool        types.Identity        `json:"pool"`
	Epoch       uint64                `json:"epoch"`
	Kind        types.InstructionKind `json:"kind"`
	Destination types.Identity        `json:"destination"`
	Amount      uint64                `json:"amount,string"`
}

func (c *Client) Transfer(ctx context.Context, instruction types.TransferInstruction) error {
	type empty struct{}

	call := func() (struct{}, error) {
		opts := &client.HttpClientOptions{
			Path:         transfersPath,
			TemplatePath: transfersPath,
			Headers:      map[string]string{"Idempotency-Key": instruction.ID},
		}
		req := &transferRequest{
			ID:          instruction.ID,
			Pool:        instruction.PoolID,
			Epoch:       instruction.Epoch,
			Kind:        instruction.Kind,
			Destination: instruction.Destination,
			Amount:      instruction.Amount,
		}
		_, err := client.SendRequest[transferRequest, empty](ctx, c, http.MethodPost, opts, req)
		if client.StatusCode(err) == http.StatusConflict {
			return struct{}{}, nil
		}
		return struct{}{}, err
	}

	if _, err := client.CallWithRetry(ctx, call, c.cfg); err != nil {
		return fmt.Errorf("failed to execute transfer %s: %w", instruction.ID, err)
	}
	return nil
}
