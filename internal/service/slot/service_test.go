package slot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"slot_backend/internal/config/env"
	"slot_backend/internal/model"
	"slot_backend/internal/repository"
	"slot_backend/internal/repository/balance_mem_repo"
	"slot_backend/internal/repository/balance_redis_repo"
	"slot_backend/internal/repository/stats_repo"
	"slot_backend/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticSlotConfig struct {
	pt model.Paytable
}

func (c staticSlotConfig) Paytable() model.Paytable {
	return c.pt
}

// losingPaytable - таблица, на которой невозможен выигрыш
func losingPaytable() model.Paytable {
	return model.Paytable{
		Rows:    1,
		Columns: 3,
		MaxBet:  10,
		Weights: model.WeightTable{
			{Symbol: "A", Weight: 1},
			{Symbol: "B", Weight: 1},
		},
		Paylines:      []model.Payline{{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
		DefaultPayout: model.PayoutTable{5: 1},
	}
}

func newService(t *testing.T, pt model.Paytable, balances repository.BalanceRepository, opts ...Option) (service.SlotService, *stats_repo.StateRepo) {
	t.Helper()
	stats := stats_repo.NewStatsRepository(95, 100, 10)
	return NewSlotService(staticSlotConfig{pt: pt}, balances, stats, zap.NewNop(), opts...), stats
}

func TestSpin_Unauthorized(t *testing.T) {
	svc, _ := newService(t, losingPaytable(), balance_mem_repo.NewBalanceRepository())

	_, err := svc.Spin(context.Background(), model.Spin{Bet: 1})
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = svc.Balance(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestSpin_InsufficientFundsKeepsBalance(t *testing.T) {
	balances := balance_mem_repo.NewBalanceRepository()
	balances.Seed("u1", 5)
	svc, stats := newService(t, losingPaytable(), balances)

	_, err := svc.Spin(context.Background(), model.Spin{UserID: "u1", Bet: 6})
	require.ErrorIs(t, err, model.ErrInsufficientFunds)

	balance, err := svc.Balance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)
	assert.Zero(t, stats.Snapshot().TotalSpins)
}

func TestSpin_ExactBalance(t *testing.T) {
	balances := balance_mem_repo.NewBalanceRepository()
	balances.Seed("u1", 10)
	svc, _ := newService(t, losingPaytable(), balances)

	res, err := svc.Spin(context.Background(), model.Spin{UserID: "u1", Bet: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Stake)
	assert.Zero(t, res.Win)
	assert.Zero(t, res.Balance)

	_, err = svc.Spin(context.Background(), model.Spin{UserID: "u1", Bet: 1})
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
}

func TestSpin_ClampsStake(t *testing.T) {
	balances := balance_mem_repo.NewBalanceRepository()
	balances.Seed("u1", 100)
	svc, _ := newService(t, losingPaytable(), balances)

	res, err := svc.Spin(context.Background(), model.Spin{UserID: "u1", Bet: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Stake)
	assert.Equal(t, int64(99), res.Balance)

	res, err = svc.Spin(context.Background(), model.Spin{UserID: "u1", Bet: 1_000})
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Stake)
	assert.Equal(t, int64(89), res.Balance)
}

func TestSpin_WinIsCredited(t *testing.T) {
	pt := env.DefaultPaytable()
	balances := balance_mem_repo.NewBalanceRepository()
	balances.Seed("u1", pt.MaxBet)

	// Все ячейки - первый символ таблицы (🍒)
	svc, stats := newService(t, pt, balances, WithRandom(func(int) int { return 0 }))

	res, err := svc.Spin(context.Background(), model.Spin{UserID: "u1", Bet: pt.MaxBet})
	require.NoError(t, err)

	wantWin := int64(len(pt.Paylines)) * pt.MaxBet * pt.DefaultPayout[5]
	assert.Equal(t, len(pt.Paylines), res.ActiveLines)
	assert.Equal(t, wantWin, res.Win)
	assert.Equal(t, wantWin, res.Balance)
	assert.Len(t, res.LineWins, len(pt.Paylines))
	assert.NotEmpty(t, res.RoundID)
	for _, row := range res.Grid {
		for _, s := range row {
			assert.Equal(t, model.Symbol("🍒"), s)
		}
	}

	snap := stats.Snapshot()
	assert.Equal(t, int64(1), snap.TotalSpins)
	assert.Equal(t, pt.MaxBet, snap.TotalBet)
	assert.Equal(t, wantWin, snap.TotalPayout)
}

func TestSpin_RoundIDsAreUnique(t *testing.T) {
	balances := balance_mem_repo.NewBalanceRepository()
	balances.Seed("u1", 50)
	svc, _ := newService(t, losingPaytable(), balances)

	seen := make(map[string]struct{})
	for range 50 {
		res, err := svc.Spin(context.Background(), model.Spin{UserID: "u1", Bet: 1})
		require.NoError(t, err)
		_, dup := seen[res.RoundID]
		require.False(t, dup)
		seen[res.RoundID] = struct{}{}
	}
}

type failingBalances struct{}

func (failingBalances) GetBalance(context.Context, string) (int64, error) {
	return 0, model.ErrPersistenceUnavailable
}

func (failingBalances) Settle(context.Context, string, repository.SettleFunc) (int64, error) {
	return 0, errors.Join(model.ErrPersistenceUnavailable, errors.New("connection refused"))
}

func TestSpin_PersistenceFailure(t *testing.T) {
	svc, stats := newService(t, losingPaytable(), failingBalances{})

	_, err := svc.Spin(context.Background(), model.Spin{UserID: "u1", Bet: 1})
	assert.ErrorIs(t, err, model.ErrPersistenceUnavailable)
	assert.Zero(t, stats.Snapshot().TotalSpins)

	_, err = svc.Balance(context.Background(), "u1")
	assert.ErrorIs(t, err, model.ErrPersistenceUnavailable)
}

// spinConcurrently запускает workers*perWorker спинов по 1 монете
func spinConcurrently(svc service.SlotService, userID string, workers, perWorker int) (ok, rejected int) {
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				_, err := svc.Spin(context.Background(), model.Spin{UserID: userID, Bet: 1})
				mu.Lock()
				switch {
				case err == nil:
					ok++
				case errors.Is(err, model.ErrInsufficientFunds):
					rejected++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return ok, rejected
}

func TestSpin_ConcurrentMemory(t *testing.T) {
	balances := balance_mem_repo.NewBalanceRepository()
	balances.Seed("u1", 100)
	svc, stats := newService(t, losingPaytable(), balances)

	ok, rejected := spinConcurrently(svc, "u1", 30, 5)
	assert.Equal(t, 100, ok)
	assert.Equal(t, 50, rejected)

	balance, err := svc.Balance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, balance)
	assert.Equal(t, int64(100), stats.Snapshot().TotalSpins)
}

func TestSpin_ConcurrentRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.HSet("coins:u1", "balance", "40")

	svc, _ := newService(t, losingPaytable(), balance_redis_repo.NewBalanceRepository(rdb))

	ok, rejected := spinConcurrently(svc, "u1", 4, 12)
	assert.Equal(t, 40, ok)
	assert.Equal(t, 8, rejected)

	balance, err := svc.Balance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestPaytableAndStats(t *testing.T) {
	pt := losingPaytable()
	svc, _ := newService(t, pt, balance_mem_repo.NewBalanceRepository())

	assert.Equal(t, pt, svc.Paytable())
	assert.Zero(t, svc.Stats().TotalSpins)
}
