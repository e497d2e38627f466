package types

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventHonoraryPositionInitialized EventType = "HonoraryPositionInitialized"
	EventQuoteFeesClaimed            EventType = "QuoteFeesClaimed"
	EventInvestorPayoutPage          EventType = "InvestorPayoutPage"
	EventCreatorPayoutDayClosed      EventType = "CreatorPayoutDayClosed"
	EventPolicyUpdated               EventType = "PolicyUpdated"
)

// Event is published to the distribution exchange after the state change it describes is committed.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	PoolID    Identity  `json:"pool_id"`
	Epoch     uint64    `json:"epoch"`
	Timestamp int64     `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func NewEvent(typ EventType, poolID Identity, epoch uint64, at time.Time, payload any) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      typ,
		PoolID:    poolID,
		Epoch:     epoch,
		Timestamp: at.Unix(),
		Payload:   payload,
	}
}

type HonoraryPositionInitializedPayload struct {
	Position                  Identity `json:"position"`
	QuoteMint                 Identity `json:"quote_mint"`
	BaseMint                  Identity `json:"base_mint"`
	TotalInvestorAllocationY0 uint64   `json:"total_investor_allocation_y0"`
}

type QuoteFeesClaimedPayload struct {
	Amount         uint64 `json:"amount"`
	EpochQuotePool uint64 `json:"epoch_quote_pool"`
	// Deferred is set when the quote was claimed on a continuation page and joins the next epoch's pool.
	Deferred bool `json:"deferred"`
}

type InvestorPayoutPagePayload struct {
	StartIndex         uint32 `json:"start_index"`
	InvestorsProcessed uint32 `json:"investors_processed"`
	TotalPayout        uint64 `json:"total_payout"`
	DustWithheld       uint64 `json:"dust_withheld"`
	CappedQuote        uint64 `json:"capped_quote"`
}

type CreatorPayoutDayClosedPayload struct {
	DailyTotalClaimed uint64 `json:"daily_total_claimed"`
	InvestorShare     uint64 `json:"investor_share"`
	CreatorShare      uint64 `json:"creator_share"`
	CarryOver         uint64 `json:"carry_over"`
}

type PolicyUpdatedPayload struct {
	InvestorFeeShareBps uint16   `json:"investor_fee_share_bps"`
	DailyCapQuote       uint64   `json:"daily_cap_quote"`
	MinPayoutQuote      uint64   `json:"min_payout_quote"`
	Authority           Identity `json:"authority"`
}
