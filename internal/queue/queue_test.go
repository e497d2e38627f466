//go:build integration

package queue_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyolabs/honorary-fee-crank/internal/queue"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
	"github.com/kyolabs/honorary-fee-crank/testutil"
)

func TestPublishEvent(t *testing.T) {
	cfg, cleanup, err := testutil.SetupRabbitMQContainer("distribution-events")
	require.NoError(t, err)
	t.Cleanup(cleanup)

	qm, err := queue.NewQueueManager(cfg)
	require.NoError(t, err)
	t.Cleanup(qm.Shutdown)

	conn, err := amqp.DialConfig(cfg.Url, amqp.Config{
		SASL: []amqp.Authentication{&amqp.PlainAuth{Username: cfg.QueueUser, Password: cfg.QueuePassword}},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, types.EventCreatorPayoutDayClosed.String(), cfg.Exchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	pool := testutil.RandomIdentity()
	ev := types.NewEvent(types.EventCreatorPayoutDayClosed, pool, 4, time.Unix(1_700_000_000, 0),
		types.CreatorPayoutDayClosedPayload{
			DailyTotalClaimed: 300000,
			InvestorShare:     150000,
			CreatorShare:      150000,
		})

	// routed elsewhere, must not reach the bound queue
	other := types.NewEvent(types.EventQuoteFeesClaimed, pool, 4, time.Unix(1_700_000_000, 0),
		types.QuoteFeesClaimedPayload{Amount: 1})
	require.NoError(t, qm.PublishEvent(context.Background(), other))
	require.NoError(t, qm.PublishEvent(context.Background(), ev))

	select {
	case d := <-deliveries:
		assert.Equal(t, ev.ID, d.MessageId)
		assert.Equal(t, "application/json", d.ContentType)

		var got struct {
			ID      string                              `json:"id"`
			Type    types.EventType                     `json:"type"`
			PoolID  types.Identity                      `json:"pool_id"`
			Epoch   uint64                              `json:"epoch"`
			Payload types.CreatorPayoutDayClosedPayload `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, ev.ID, got.ID)
		assert.Equal(t, types.EventCreatorPayoutDayClosed, got.Type)
		assert.Equal(t, pool, got.PoolID)
		assert.Equal(t, uint64(4), got.Epoch)
		assert.Equal(t, uint64(150000), got.Payload.CreatorShare)
	case <-time.After(10 * time.Second):
		t.Fatal("event was not delivered")
	}
}
