package types

type PayoutStatus string

const (
	PayoutStatusPaid   PayoutStatus = "paid"
	PayoutStatusDust   PayoutStatus = "dust"
	PayoutStatusCapped PayoutStatus = "capped"
	PayoutStatusZero   PayoutStatus = "zero"
)

func (s PayoutStatus) String() string {
	return string(s)
}

type Payout struct {
	Index        uint32
	Destination  Identity
	LockedAmount uint64
	// RawAmount is the pro-rata amount before dust and cap rules.
	RawAmount uint64
	Amount    uint64
	Status    PayoutStatus
}

// Settlement closes an epoch. CreatorRemainder includes dust and capped quote.
type Settlement struct {
	Epoch                 uint64
	EpochQuotePool        uint64
	DailyDistributedQuote uint64
	CarryOverDust         uint64
	CappedQuote           uint64
	CreatorRemainder      uint64
}
