package types

type HarvestedFee struct {
	QuoteAmount uint64
	BaseAmount  uint64
}

type InvestorRecord struct {
	Identity     Identity
	LockedAmount uint64
}

// InvestorPage is one contiguous slice of the vesting source's ordered investor list.
// The epoch totals are repeated on every page and pinned when the epoch opens.
type InvestorPage struct {
	StartIndex          uint32
	Records             []InvestorRecord
	TotalLockedForEpoch uint64
	TotalInvestors      uint32
}

func (p InvestorPage) EndIndex() uint32 {
	return p.StartIndex + uint32(len(p.Records))
}
