package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/client"
	"github.com/kyolabs/honorary-fee-crank/internal/config"
)

type testClient struct {
	url string
}

func (c *testClient) GetBaseURL() string                      { return c.url }
func (c *testClient) GetDefaultRequestTimeout() time.Duration { return time.Second }
func (c *testClient) GetHttpClient() *http.Client             { return http.DefaultClient }

type echo struct {
	Value string `json:"value"`
}

func TestCallWithRetry(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		wantErr      bool
		wantStatus   int
		wantAttempts int32
	}{
		{
			name:         "succeeds first time",
			statuses:     []int{http.StatusOK},
			wantAttempts: 1,
		},
		{
			name:         "retries server errors",
			statuses:     []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusOK},
			wantAttempts: 3,
		},
		{
			name:         "retries throttling",
			statuses:     []int{http.StatusTooManyRequests, http.StatusOK},
			wantAttempts: 2,
		},
		{
			name:         "does not retry client errors",
			statuses:     []int{http.StatusBadRequest, http.StatusOK},
			wantErr:      true,
			wantStatus:   http.StatusBadRequest,
			wantAttempts: 1,
		},
		{
			name:         "gives up after max attempts",
			statuses:     []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusOK},
			wantErr:      true,
			wantStatus:   http.StatusServiceUnavailable,
			wantAttempts: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				status := tt.statuses[n-1]
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte(`{"value":"ok"}`))
				}
			}))
			defer srv.Close()

			cfg := &config.ClientConfig{
				URL:           srv.URL,
				Timeout:       time.Second,
				MaxRetryTimes: 3,
				RetryInterval: time.Millisecond,
			}
			c := &testClient{url: srv.URL}

			call := func() (*echo, error) {
				type empty struct{}
				return client.SendRequest[empty, echo](
					context.Background(), c, http.MethodGet,
					&client.HttpClientOptions{Path: "/echo", TemplatePath: "/echo"}, nil,
				)
			}

			resp, err := client.CallWithRetry(context.Background(), call, cfg)
			assert.Equal(t, tt.wantAttempts, calls.Load())
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, client.StatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", resp.Value)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, client.IsRetryable(nil))
	assert.False(t, client.IsRetryable(context.Canceled))
	assert.True(t, client.IsRetryable(context.DeadlineExceeded))
	assert.True(t, client.IsRetryable(&client.HTTPError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, client.IsRetryable(&client.HTTPError{StatusCode: http.StatusNotFound}))
	assert.False(t, client.IsRetryable(&client.HTTPError{StatusCode: http.StatusConflict}))
}
