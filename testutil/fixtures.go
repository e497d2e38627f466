package testutil

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/gagliardetto/solana-go"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func RandomIdentity() types.Identity {
	return solana.NewWallet().PublicKey()
}

// RandomInvestors returns n investors with locked amounts in [0, maxLocked].
func RandomInvestors(f *gofakeit.Faker, n int, maxLocked uint) []types.InvestorRecord {
	records := make([]types.InvestorRecord, n)
	for i := range records {
		records[i] = types.InvestorRecord{
			Identity:     RandomIdentity(),
			LockedAmount: uint64(f.UintRange(0, maxLocked)),
		}
	}
	return records
}

// Investors builds records with fresh identities for the given locked amounts.
func Investors(locked ...uint64) []types.InvestorRecord {
	records := make([]types.InvestorRecord, len(locked))
	for i, amount := range locked {
		records[i] = types.InvestorRecord{Identity: RandomIdentity(), LockedAmount: amount}
	}
	return records
}

func TotalLocked(records []types.InvestorRecord) uint64 {
	var total uint64
	for _, r := range records {
		total += r.LockedAmount
	}
	return total
}

// Pages splits records into consecutive pages of at most size records.
func Pages(records []types.InvestorRecord, size int) []types.InvestorPage {
	total := TotalLocked(records)
	var pages []types.InvestorPage
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		pages = append(pages, types.InvestorPage{
			StartIndex:          uint32(start),
			Records:             records[start:end],
			TotalLockedForEpoch: total,
			TotalInvestors:      uint32(len(records)),
		})
	}
	if len(pages) == 0 {
		pages = append(pages, types.InvestorPage{})
	}
	return pages
}
