package stats_repo

import (
	slotModel "slot_backend/internal/model"
	repoModel "slot_backend/internal/repository/stats_repo/model"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	// criticalRTPDeviation - отклонение RTP окна (п.п.), при котором включается режим дрейфа
	criticalRTPDeviation = 10
	// normalRTPDeviation - отклонение, при котором режим дрейфа выключается
	normalRTPDeviation = 5
)

var hundred = decimal.NewFromInt(100)

// StateRepo хранит статистику спинов процесса.
// Таблицы слота не меняются: дрейф только сообщается наружу
type StateRepo struct {
	mtx        sync.RWMutex
	state      repoModel.CasinoState
	checkEvery int64
}

// NewStatsRepository Конструктор с начальным состоянием
func NewStatsRepository(targetRTP float64, windowSize, checkEvery int) *StateRepo {
	if windowSize <= 0 {
		windowSize = 500
	}
	if checkEvery <= 0 {
		checkEvery = 25
	}
	return &StateRepo{
		state: repoModel.CasinoState{
			TargetRTP:  decimal.NewFromFloat(targetRTP),
			SpinWindow: make([]repoModel.SpinResult, 0, windowSize),
			WindowSize: windowSize,
		},
		checkEvery: int64(checkEvery),
	}
}

// UpdateState Обновление состояния после спина
func (r *StateRepo) UpdateState(bet, payout int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalSpins++
	r.state.TotalBet += bet
	r.state.TotalPayout += payout
	r.state.CurrentRTP = rtp(r.state.TotalBet, r.state.TotalPayout)

	// Добавляем спин в окно, поддерживаем размер окна
	r.state.SpinWindow = append(r.state.SpinWindow, repoModel.SpinResult{Bet: bet, Payout: payout})
	if len(r.state.SpinWindow) > r.state.WindowSize {
		r.state.SpinWindow = r.state.SpinWindow[1:]
	}

	var windowBet, windowPayout int64
	for _, spin := range r.state.SpinWindow {
		windowBet += spin.Bet
		windowPayout += spin.Payout
	}
	r.state.WindowRTP = rtp(windowBet, windowPayout)
}

// Snapshot - копия текущей статистики
func (r *StateRepo) Snapshot() slotModel.Stats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return slotModel.Stats{
		TotalSpins:  r.state.TotalSpins,
		TotalBet:    r.state.TotalBet,
		TotalPayout: r.state.TotalPayout,
		CurrentRTP:  r.state.CurrentRTP,
		WindowRTP:   r.state.WindowRTP,
		WindowSize:  len(r.state.SpinWindow),
		TargetRTP:   r.state.TargetRTP,
	}
}

// CheckDrift проверяет RTP окна каждые checkEvery спинов.
// Возвращает true только при входе в режим дрейфа
func (r *StateRepo) CheckDrift() (bool, string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.state.TotalSpins == 0 || r.state.TotalSpins%r.checkEvery != 0 {
		return false, ""
	}

	diff := r.state.WindowRTP.Sub(r.state.TargetRTP)
	absDiff := diff.Abs()

	if absDiff.GreaterThan(decimal.NewFromInt(criticalRTPDeviation)) {
		direction := "low"
		if diff.IsPositive() {
			direction = "high"
		}
		entered := !r.state.DriftMode || r.state.DriftDirection != direction
		r.state.DriftMode = true
		r.state.DriftDirection = direction
		return entered, direction
	}

	// Выходим из режима дрейфа, когда RTP вернулся к целевому
	if r.state.DriftMode && absDiff.LessThan(decimal.NewFromInt(normalRTPDeviation)) {
		r.state.DriftMode = false
		r.state.DriftDirection = ""
	}
	return false, ""
}

func rtp(bet, payout int64) decimal.Decimal {
	if bet == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(payout).Div(decimal.NewFromInt(bet)).Mul(hundred)
}
