package slot

import (
	"context"
	"errors"
	"slot_backend/internal/model"

	"go.uber.org/zap"
)

// Spin выполняет спин: списание ставки, генерация поля, оценка линий и
// начисление выигрыша - одной атомарной операцией над балансом
func (s *serv) Spin(ctx context.Context, spinReq model.Spin) (*model.SpinResult, error) {
	if spinReq.UserID == "" {
		return nil, model.ErrUnauthorized
	}

	stake := ClampStake(spinReq.Bet, s.paytable.MaxBet)

	var res *model.SpinResult
	balance, err := s.balanceRepo.Settle(ctx, spinReq.UserID, func(balance int64) (int64, error) {
		if balance < stake {
			return balance, model.ErrInsufficientFunds
		}

		// Списание ставки
		balance -= stake

		res = s.SpinOnce(stake)

		// Начисление выигрыша
		balance += res.Win
		return balance, nil
	})
	if err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			s.logger.Debug("spin rejected",
				zap.String("user_id", spinReq.UserID),
				zap.Int64("stake", stake),
				zap.Int64("balance", balance),
			)
			return nil, err
		}
		s.logger.Error("spin failed",
			zap.String("user_id", spinReq.UserID),
			zap.Int64("stake", stake),
			zap.Error(err),
		)
		return nil, err
	}

	res.Balance = balance

	s.statsRepo.UpdateState(stake, res.Win)
	if drifted, direction := s.statsRepo.CheckDrift(); drifted {
		stats := s.statsRepo.Snapshot()
		s.logger.Warn("rtp drift",
			zap.String("direction", direction),
			zap.String("window_rtp", stats.WindowRTP.StringFixed(2)),
			zap.String("target_rtp", stats.TargetRTP.StringFixed(2)),
		)
	}

	s.logger.Debug("spin",
		zap.String("round_id", res.RoundID),
		zap.String("user_id", spinReq.UserID),
		zap.Int64("stake", stake),
		zap.Int64("win", res.Win),
		zap.Int64("balance", res.Balance),
	)

	return res, nil
}

// SpinOnce генерирует поле и считает выигрыш, баланс не трогает
func (s *serv) SpinOnce(stake int64) *model.SpinResult {
	grid := s.generator.GenerateGrid(s.paytable.Rows, s.paytable.Columns)
	active := ActivePaylines(s.paytable.Paylines, stake, s.paytable.MaxBet)
	outcome := s.evaluator.Evaluate(grid, active, stake)

	return &model.SpinResult{
		RoundID:      s.newRoundID(),
		Grid:         grid,
		Stake:        stake,
		ActiveLines:  len(active),
		LineWins:     outcome.LineWins,
		ScatterCount: outcome.ScatterCount,
		ScatterWin:   outcome.ScatterWin,
		Win:          outcome.TotalWin,
	}
}
