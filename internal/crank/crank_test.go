package crank_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyolabs/honorary-fee-crank/internal/crank"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
	"github.com/kyolabs/honorary-fee-crank/testutil"
)

var epochStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func referencePolicy() types.PolicyConfig {
	return types.PolicyConfig{
		InvestorFeeShareBps: 6_000,
		DailyCapQuote:       500_000,
		MinPayoutQuote:      1_000,
		Authority:           testutil.RandomIdentity(),
	}
}

// runEpoch cranks every page in order and returns the final progress with all payouts.
func runEpoch(
	t *testing.T,
	policy types.PolicyConfig,
	progress types.DistributionProgress,
	pages []types.InvestorPage,
	pageSize uint32,
	fee types.HarvestedFee,
	now time.Time,
) (types.DistributionProgress, []types.Payout, *types.Settlement) {
	t.Helper()
	var (
		payouts    []types.Payout
		settlement *types.Settlement
	)
	for i, page := range pages {
		harvest := types.HarvestedFee{}
		if i == 0 {
			harvest = fee
		}
		res, err := crank.Execute(crank.Input{
			Policy:   policy,
			Progress: progress,
			Page:     page,
			PageSize: pageSize,
			Fee:      harvest,
			Now:      now,
		})
		require.NoError(t, err, "page %d", i)
		progress = res.Progress
		payouts = append(payouts, res.Payouts...)
		if res.Settlement != nil {
			require.Nil(t, settlement, "epoch settled twice")
			settlement = res.Settlement
		}
	}
	return progress, payouts, settlement
}

func amounts(payouts []types.Payout) []uint64 {
	out := make([]uint64, len(payouts))
	for i, p := range payouts {
		out[i] = p.Amount
	}
	return out
}

func TestExecute_ReferenceScenario(t *testing.T) {
	policy := referencePolicy()
	investors := testutil.Investors(200_000, 300_000, 0)
	fee := types.HarvestedFee{QuoteAmount: 300_000}

	for _, pageSize := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("page size %d", pageSize), func(t *testing.T) {
			progress, payouts, settlement := runEpoch(
				t, policy, types.NewDistributionProgress(1_000_000),
				testutil.Pages(investors, pageSize), uint32(pageSize), fee, epochStart,
			)

			assert.Equal(t, []uint64{60_000, 90_000, 0}, amounts(payouts))
			assert.Equal(t, types.PayoutStatusZero, payouts[2].Status)
			require.NotNil(t, settlement)
			assert.Equal(t, uint64(150_000), settlement.CreatorRemainder)
			assert.Equal(t, uint64(150_000), progress.DailyDistributedQuote)
			assert.Equal(t, uint16(5_000), progress.EligibleBps)
			assert.Equal(t, uint64(150_000), progress.InvestorQuota)
			assert.Equal(t, uint32(3), progress.Cursor)
			assert.Equal(t, types.EpochStateComplete, crank.StateOf(progress))
			assert.Equal(t, uint64(1), progress.Epoch)
		})
	}
}

func TestExecute_DustSuppressed(t *testing.T) {
	policy := referencePolicy()
	investors := testutil.Investors(500_000, 50)

	progress, payouts, settlement := runEpoch(
		t, policy, types.NewDistributionProgress(1_000_000),
		testutil.Pages(investors, 2), 2, types.HarvestedFee{QuoteAmount: 300_000}, epochStart,
	)

	require.Len(t, payouts, 2)
	assert.Equal(t, types.PayoutStatusPaid, payouts[0].Status)
	assert.Equal(t, uint64(149_985), payouts[0].Amount)

	assert.Equal(t, types.PayoutStatusDust, payouts[1].Status)
	assert.Equal(t, uint64(14), payouts[1].RawAmount)
	assert.Zero(t, payouts[1].Amount)
	assert.Equal(t, uint64(14), progress.CarryOverDust)

	require.NotNil(t, settlement)
	assert.Equal(t, uint64(150_015), settlement.CreatorRemainder)
	assert.Equal(t, uint64(300_000), settlement.DailyDistributedQuote+settlement.CreatorRemainder)
}

func TestExecute_Cap(t *testing.T) {
	investors := testutil.Investors(200_000, 300_000, 100_000)
	fee := types.HarvestedFee{QuoteAmount: 300_000}

	tests := []struct {
		name          string
		cap           uint64
		wantAmounts   []uint64
		wantStatuses  []types.PayoutStatus
		wantCapped    uint64
		wantRemainder uint64
	}{
		{
			name:          "uncapped",
			cap:           0,
			wantAmounts:   []uint64{50_000, 75_000, 25_000},
			wantStatuses:  []types.PayoutStatus{types.PayoutStatusPaid, types.PayoutStatusPaid, types.PayoutStatusPaid},
			wantRemainder: 150_000,
		},
		{
			name:          "truncated then exhausted",
			cap:           100_000,
			wantAmounts:   []uint64{50_000, 50_000, 0},
			wantStatuses:  []types.PayoutStatus{types.PayoutStatusPaid, types.PayoutStatusCapped, types.PayoutStatusCapped},
			wantCapped:    25_000 + 25_000,
			wantRemainder: 200_000,
		},
		{
			name:          "truncation below floor is withheld",
			cap:           50_500,
			wantAmounts:   []uint64{50_000, 0, 0},
			wantStatuses:  []types.PayoutStatus{types.PayoutStatusPaid, types.PayoutStatusCapped, types.PayoutStatusCapped},
			wantCapped:    75_000 + 25_000,
			wantRemainder: 250_000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := referencePolicy()
			policy.InvestorFeeShareBps = 5_000
			policy.DailyCapQuote = tt.cap

			progress, payouts, settlement := runEpoch(
				t, policy, types.NewDistributionProgress(1_000_000),
				testutil.Pages(investors, 1), 1, fee, epochStart,
			)

			assert.Equal(t, tt.wantAmounts, amounts(payouts))
			for i, p := range payouts {
				assert.Equal(t, tt.wantStatuses[i], p.Status, "payout %d", i)
			}
			assert.Equal(t, tt.wantCapped, progress.CappedQuote)
			require.NotNil(t, settlement)
			assert.Equal(t, tt.wantRemainder, settlement.CreatorRemainder)
			if tt.cap != 0 {
				assert.LessOrEqual(t, progress.DailyDistributedQuote, tt.cap)
			}
			assert.Equal(t, uint32(3), progress.Cursor)
		})
	}
}

func TestExecute_TimeGate(t *testing.T) {
	policy := referencePolicy()
	investors := testutil.Investors(200_000, 300_000)
	closed, _, _ := runEpoch(
		t, policy, types.NewDistributionProgress(1_000_000),
		testutil.Pages(investors, 2), 2, types.HarvestedFee{QuoteAmount: 1_000}, epochStart,
	)

	page := testutil.Pages(investors, 2)[0]
	input := crank.Input{
		Policy:   policy,
		Progress: closed,
		Page:     page,
		PageSize: 2,
		Fee:      types.HarvestedFee{QuoteAmount: 5_000},
	}

	t.Run("one second early", func(t *testing.T) {
		input.Now = epochStart.Add(types.EpochDuration - time.Second)
		_, err := crank.Execute(input)
		assert.True(t, types.IsErrorCode(err, types.DistributionTooEarly), "got %v", err)
	})
	t.Run("exactly 24h later", func(t *testing.T) {
		input.Now = epochStart.Add(types.EpochDuration)
		res, err := crank.Execute(input)
		require.NoError(t, err)
		assert.True(t, res.Opened)
		assert.Equal(t, uint64(2), res.Progress.Epoch)
		assert.Equal(t, input.Now.Unix(), res.Progress.EpochStartTime)
		assert.Equal(t, uint64(5_000), res.Progress.EpochQuotePool)
		assert.Zero(t, res.Progress.CarryOverDust)
		assert.Equal(t, res.TotalPaid(), res.Progress.DailyDistributedQuote)
	})
	t.Run("continuation pages are not gated", func(t *testing.T) {
		pages := testutil.Pages(investors, 1)
		first, err := crank.Execute(crank.Input{
			Policy: policy, Progress: closed, Page: pages[0], PageSize: 1,
			Fee: types.HarvestedFee{QuoteAmount: 5_000}, Now: epochStart.Add(types.EpochDuration),
		})
		require.NoError(t, err)
		// the same instant as the opening crank
		_, err = crank.Execute(crank.Input{
			Policy: policy, Progress: first.Progress, Page: pages[1], PageSize: 1,
			Now: epochStart.Add(types.EpochDuration),
		})
		require.NoError(t, err)
	})
}

func TestExecute_Rejections(t *testing.T) {
	policy := referencePolicy()
	investors := testutil.Investors(200_000, 300_000, 0)
	pages := testutil.Pages(investors, 2)

	opened, err := crank.Execute(crank.Input{
		Policy: policy, Progress: types.NewDistributionProgress(1_000_000), Page: pages[0],
		PageSize: 2, Fee: types.HarvestedFee{QuoteAmount: 300_000}, Now: epochStart,
	})
	require.NoError(t, err)
	inEpoch := opened.Progress

	closed, err := crank.Execute(crank.Input{
		Policy: policy, Progress: inEpoch, Page: pages[1], PageSize: 2, Now: epochStart,
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		progress types.DistributionProgress
		page     types.InvestorPage
		pageSize uint32
		fee      types.HarvestedFee
		now      time.Time
		want     types.ErrorCode
	}{
		{
			name:     "base fee on opening crank",
			progress: types.NewDistributionProgress(1_000_000),
			page:     pages[0],
			pageSize: 2,
			fee:      types.HarvestedFee{QuoteAmount: 300_000, BaseAmount: 1},
			want:     types.NonQuoteFeeDetected,
		},
		{
			name:     "base fee wins over cursor mismatch",
			progress: inEpoch,
			page:     pages[0],
			pageSize: 2,
			fee:      types.HarvestedFee{BaseAmount: 7},
			want:     types.NonQuoteFeeDetected,
		},
		{
			name:     "replayed first page",
			progress: inEpoch,
			page:     pages[0],
			pageSize: 2,
			want:     types.CursorMismatch,
		},
		{
			name:     "replayed last page after close",
			progress: closed.Progress,
			page:     pages[1],
			pageSize: 2,
			now:      epochStart.Add(48 * time.Hour),
			want:     types.CursorMismatch,
		},
		{
			name:     "continuation page before any epoch",
			progress: types.NewDistributionProgress(1_000_000),
			page:     pages[1],
			pageSize: 2,
			want:     types.CursorMismatch,
		},
		{
			name:     "replayed opening page inside the gate",
			progress: closed.Progress,
			page:     pages[0],
			pageSize: 2,
			now:      epochStart.Add(time.Hour),
			want:     types.DistributionTooEarly,
		},
		{
			name:     "page larger than page size",
			progress: types.NewDistributionProgress(1_000_000),
			page:     testutil.Pages(investors, 3)[0],
			pageSize: 2,
			want:     types.InvalidInvestorData,
		},
		{
			name:     "zero page size",
			progress: types.NewDistributionProgress(1_000_000),
			page:     pages[0],
			pageSize: 0,
			want:     types.InvalidInvestorData,
		},
		{
			name:     "totals differ from pinned totals",
			progress: inEpoch,
			page: types.InvestorPage{
				StartIndex:          2,
				Records:             investors[2:],
				TotalLockedForEpoch: 1,
				TotalInvestors:      3,
			},
			pageSize: 2,
			want:     types.InvalidInvestorData,
		},
		{
			name:     "locked sum above epoch total",
			progress: types.NewDistributionProgress(1_000_000),
			page: types.InvestorPage{
				Records:             testutil.Investors(400_000, 400_000),
				TotalLockedForEpoch: 500_000,
				TotalInvestors:      2,
			},
			pageSize: 2,
			want:     types.InvalidInvestorData,
		},
		{
			name:     "page past the investor count",
			progress: types.NewDistributionProgress(1_000_000),
			page: types.InvestorPage{
				Records:             testutil.Investors(1, 1),
				TotalLockedForEpoch: 2,
				TotalInvestors:      1,
			},
			pageSize: 2,
			want:     types.InvalidInvestorData,
		},
		{
			name:     "empty page with investors left",
			progress: types.NewDistributionProgress(1_000_000),
			page:     types.InvestorPage{TotalLockedForEpoch: 10, TotalInvestors: 1},
			pageSize: 2,
			want:     types.InvalidInvestorData,
		},
		{
			name:     "missing destination",
			progress: types.NewDistributionProgress(1_000_000),
			page: types.InvestorPage{
				Records:             []types.InvestorRecord{{LockedAmount: 10}},
				TotalLockedForEpoch: 10,
				TotalInvestors:      1,
			},
			pageSize: 2,
			want:     types.InvalidInvestorData,
		},
		{
			name: "pool overflow",
			progress: types.DistributionProgress{
				TotalInvestorAllocationY0: 1_000_000,
				PendingQuote:              math.MaxUint64,
			},
			page:     pages[0],
			pageSize: 2,
			fee:      types.HarvestedFee{QuoteAmount: 1},
			want:     types.ArithmeticOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now.IsZero() {
				now = epochStart
			}
			before := tt.progress
			res, err := crank.Execute(crank.Input{
				Policy:   policy,
				Progress: tt.progress,
				Page:     tt.page,
				PageSize: tt.pageSize,
				Fee:      tt.fee,
				Now:      now,
			})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.want, types.ErrorCodeOf(err), "got %v", err)
			assert.Equal(t, before, tt.progress)
		})
	}
}

func TestExecute_ZeroInvestorsSettlesImmediately(t *testing.T) {
	res, err := crank.Execute(crank.Input{
		Policy:   referencePolicy(),
		Progress: types.NewDistributionProgress(1_000_000),
		Page:     types.InvestorPage{},
		PageSize: 10,
		Fee:      types.HarvestedFee{QuoteAmount: 12_345},
		Now:      epochStart,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Settlement)
	assert.Empty(t, res.Payouts)
	assert.Equal(t, uint64(12_345), res.Settlement.CreatorRemainder)
	assert.True(t, res.Progress.EpochClosed)
}

func TestExecute_ContinuationQuoteIsDeferred(t *testing.T) {
	policy := referencePolicy()
	investors := testutil.Investors(200_000, 300_000)
	pages := testutil.Pages(investors, 1)

	first, err := crank.Execute(crank.Input{
		Policy: policy, Progress: types.NewDistributionProgress(1_000_000), Page: pages[0],
		PageSize: 1, Fee: types.HarvestedFee{QuoteAmount: 100_000}, Now: epochStart,
	})
	require.NoError(t, err)

	second, err := crank.Execute(crank.Input{
		Policy: policy, Progress: first.Progress, Page: pages[1],
		PageSize: 1, Fee: types.HarvestedFee{QuoteAmount: 7_000}, Now: epochStart.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(7_000), second.Deferred)
	assert.Equal(t, uint64(7_000), second.Progress.PendingQuote)
	require.NotNil(t, second.Settlement)
	assert.Equal(t, uint64(100_000), second.Settlement.EpochQuotePool)

	next, err := crank.Execute(crank.Input{
		Policy: policy, Progress: second.Progress, Page: pages[0],
		PageSize: 1, Fee: types.HarvestedFee{QuoteAmount: 3_000}, Now: epochStart.Add(25 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), next.Progress.EpochQuotePool)
	assert.Zero(t, next.Progress.PendingQuote)
}

func TestExecute_BaselineFromFirstEpoch(t *testing.T) {
	policy := referencePolicy()
	investors := testutil.Investors(200_000, 300_000)

	progress, payouts, _ := runEpoch(
		t, policy, types.NewDistributionProgress(0),
		testutil.Pages(investors, 2), 2, types.HarvestedFee{QuoteAmount: 100_000}, epochStart,
	)

	assert.Equal(t, uint64(500_000), progress.TotalInvestorAllocationY0)
	// everything is still locked so the policy share applies in full
	assert.Equal(t, uint16(6_000), progress.EligibleBps)
	assert.Equal(t, []uint64{24_000, 36_000}, amounts(payouts))
}

func TestExecute_ConservationAcrossPageSplits(t *testing.T) {
	faker := gofakeit.New(42)

	for round := 0; round < 20; round++ {
		investors := testutil.RandomInvestors(faker, faker.IntRange(1, 40), 5_000_000)
		policy := types.PolicyConfig{
			InvestorFeeShareBps: uint16(faker.IntRange(0, 10_000)),
			DailyCapQuote:       uint64(faker.IntRange(0, 2_000_000)),
			MinPayoutQuote:      uint64(faker.IntRange(1, 5_000)),
			Authority:           testutil.RandomIdentity(),
		}
		y0 := testutil.TotalLocked(investors) + uint64(faker.IntRange(0, 10_000_000))
		fee := types.HarvestedFee{QuoteAmount: uint64(faker.IntRange(0, 10_000_000))}

		var reference []uint64
		for _, pageSize := range []int{1, 3, 7, len(investors)} {
			progress, payouts, settlement := runEpoch(
				t, policy, types.NewDistributionProgress(y0),
				testutil.Pages(investors, pageSize), uint32(pageSize), fee, epochStart,
			)
			require.NotNil(t, settlement)

			var paid uint64
			for _, p := range payouts {
				paid += p.Amount
			}
			assert.Equal(t, fee.QuoteAmount, paid+settlement.CreatorRemainder, "round %d page size %d", round, pageSize)
			assert.LessOrEqual(t, paid, progress.InvestorQuota)
			if policy.DailyCapQuote != 0 {
				assert.LessOrEqual(t, paid, policy.DailyCapQuote)
			}
			for _, p := range payouts {
				if p.Amount > 0 {
					assert.GreaterOrEqual(t, p.Amount, policy.MinPayoutQuote)
				}
			}

			if reference == nil {
				reference = amounts(payouts)
				continue
			}
			assert.Equal(t, reference, amounts(payouts), "round %d page size %d", round, pageSize)
		}
	}
}
