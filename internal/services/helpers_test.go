package services_test

import (
	"context"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kyolabs/honorary-fee-crank/internal/config"
	"github.com/kyolabs/honorary-fee-crank/internal/db"
	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/services"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
	"github.com/kyolabs/honorary-fee-crank/testutil"
	"github.com/kyolabs/honorary-fee-crank/testutil/mocks"
)

var epochStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	cfg       *config.Config
	svc       *services.Service
	db        *mocks.DbInterface
	fees      *mocks.FeeInterface
	ledger    *mocks.LedgerInterface
	transfers *mocks.TransferInterface
	publisher *mocks.EventPublisher
	clock     *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Crank: config.CrankConfig{
			ProgramID:              testutil.RandomIdentity().String(),
			PageSize:               2,
			MaxConcurrentPositions: 2,
		},
		Poller: config.PollerConfig{
			DistributionInterval:  time.Minute,
			SettlementInterval:    time.Second,
			SettlementBatchLimit:  100,
			MaxSettlementAttempts: 3,
		},
	}

	env := &testEnv{
		cfg:       cfg,
		db:        mocks.NewDbInterface(t),
		fees:      mocks.NewFeeInterface(t),
		ledger:    mocks.NewLedgerInterface(t),
		transfers: mocks.NewTransferInterface(t),
		publisher: mocks.NewEventPublisher(t),
		clock:     clockwork.NewFakeClockAt(epochStart),
	}
	env.svc = services.NewService(cfg, env.db, env.fees, env.ledger, env.transfers, env.publisher, env.clock)
	return env
}

func (env *testEnv) allowEvents() {
	env.publisher.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// store keeps the documents of one position and applies commits the way the database does.
type store struct {
	poolID   types.Identity
	position *model.HonoraryPositionDocument
	policy   *model.PolicyDocument
	progress *model.ProgressDocument
	commits  []*db.CrankCommit
}

func (st *store) transfers() []model.TransferDocument {
	var all []model.TransferDocument
	for _, c := range st.commits {
		all = append(all, c.Transfers...)
	}
	return all
}

func (env *testEnv) keys(t *testing.T, poolID types.Identity) (position, policy, progress types.Identity) {
	t.Helper()
	program := env.cfg.Crank.ProgramKey()
	var err error
	position, err = types.DeriveStateKey(program, types.SeedHonoraryPosition, poolID)
	require.NoError(t, err)
	policy, err = types.DeriveStateKey(program, types.SeedPolicy, poolID)
	require.NoError(t, err)
	progress, err = types.DeriveStateKey(program, types.SeedProgress, poolID)
	require.NoError(t, err)
	return position, policy, progress
}

// seed registers a position for a fresh pool and wires the db reads and commits to an in-memory store.
func (env *testEnv) seed(t *testing.T, policy types.PolicyConfig, y0 uint64) *store {
	t.Helper()
	poolID := testutil.RandomIdentity()
	positionKey, policyKey, progressKey := env.keys(t, poolID)

	st := &store{
		poolID: poolID,
		position: model.FromHonoraryPosition(&types.HonoraryPosition{
			Key: positionKey,
			Pool: types.PoolConfig{
				PoolID:    poolID,
				LowerTick: -100,
				UpperTick: 100,
				Liquidity: sdkmath.NewUint(1_000_000),
			},
			QuoteMint:   testutil.RandomIdentity(),
			BaseMint:    testutil.RandomIdentity(),
			Creator:     testutil.RandomIdentity(),
			IsActive:    true,
			CreatedAt:   epochStart,
			PolicyKey:   policyKey,
			ProgressKey: progressKey,
		}),
		policy:   model.FromPolicy(policyKey, poolID, policy, epochStart),
		progress: model.FromProgress(progressKey, poolID, types.NewDistributionProgress(y0)),
	}

	env.db.On("GetPosition", mock.Anything, positionKey).
		Return(func(context.Context, types.Identity) (*model.HonoraryPositionDocument, error) {
			return st.position, nil
		}).Maybe()
	env.db.On("GetPolicy", mock.Anything, policyKey).
		Return(func(context.Context, types.Identity) (*model.PolicyDocument, error) {
			return st.policy, nil
		}).Maybe()
	env.db.On("GetProgress", mock.Anything, progressKey).
		Return(func(context.Context, types.Identity) (*model.ProgressDocument, error) {
			return st.progress, nil
		}).Maybe()
	env.db.On("CommitCrank", mock.Anything, mock.MatchedBy(func(c *db.CrankCommit) bool {
		return c.Progress.Key == progressKey
	})).Return(func(_ context.Context, c *db.CrankCommit) error {
		if c.ExpectedVersion != st.progress.Version || c.ExpectedCursor != st.progress.Cursor {
			return &db.ConcurrentUpdateError{Key: progressKey.String(), Message: "stale"}
		}
		st.progress = c.Progress
		st.commits = append(st.commits, c)
		return nil
	}).Maybe()

	return st
}

func referencePolicy() types.PolicyConfig {
	return types.PolicyConfig{
		InvestorFeeShareBps: 6_000,
		DailyCapQuote:       500_000,
		MinPayoutQuote:      1_000,
		Authority:           testutil.RandomIdentity(),
	}
}
