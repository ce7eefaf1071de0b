package converter

import (
	"errors"
	"net/http"
	dto "slot_backend/internal/api/dto/slot"
	"slot_backend/internal/model"
)

func ToSpin(userID string, req dto.SpinRequest) model.Spin {
	return model.Spin{
		UserID: userID,
		Bet:    req.Bet,
	}
}

func ToSpinResponse(res model.SpinResult) dto.SpinResponse {
	return dto.SpinResponse{
		RoundID:      res.RoundID,
		Grid:         toGrid(res.Grid),
		Stake:        res.Stake,
		ActiveLines:  res.ActiveLines,
		LineWins:     toLineWins(res.LineWins),
		ScatterCount: res.ScatterCount,
		ScatterWin:   res.ScatterWin,
		Win:          res.Win,
		Balance:      res.Balance,
	}
}

func ToBalanceResponse(balance int64) dto.BalanceResponse {
	return dto.BalanceResponse{Balance: balance}
}

func ToPaytableResponse(pt model.Paytable) dto.PaytableResponse {
	symbols := make([]dto.SymbolWeight, len(pt.Weights))
	for i, sw := range pt.Weights {
		symbols[i] = dto.SymbolWeight{Symbol: string(sw.Symbol), Weight: sw.Weight}
	}

	paylines := make([][][2]int, len(pt.Paylines))
	for i, line := range pt.Paylines {
		paylines[i] = toCells(line)
	}

	symbolPayouts := make(map[string]map[int]int64, len(pt.SymbolPayouts))
	for sym, table := range pt.SymbolPayouts {
		symbolPayouts[string(sym)] = table
	}

	return dto.PaytableResponse{
		Rows:          pt.Rows,
		Columns:       pt.Columns,
		MaxBet:        pt.MaxBet,
		Symbols:       symbols,
		Paylines:      paylines,
		DefaultPayout: pt.DefaultPayout,
		SymbolPayouts: symbolPayouts,
		TwoOfAKind:    pt.TwoOfAKind,
		Scatter: dto.Scatter{
			Enabled:  pt.Scatter.Enabled,
			Symbol:   string(pt.Scatter.Symbol),
			MinCount: pt.Scatter.MinCount,
			Payouts:  pt.Scatter.Payouts,
		},
		MaxWinMultiplier: pt.MaxWinMultiplier,
	}
}

func ToStatsResponse(s model.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalSpins:  s.TotalSpins,
		TotalBet:    s.TotalBet,
		TotalPayout: s.TotalPayout,
		CurrentRTP:  s.CurrentRTP.StringFixed(2),
		WindowRTP:   s.WindowRTP.StringFixed(2),
		WindowSize:  s.WindowSize,
		TargetRTP:   s.TargetRTP.StringFixed(2),
	}
}

// ToErrorResponse сопоставляет ошибку сервиса HTTP статусу и коду ошибки
func ToErrorResponse(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, model.ErrInsufficientFunds):
		return http.StatusBadRequest, dto.ErrorResponse{Error: dto.KindInsufficientFunds}
	case errors.Is(err, model.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorResponse{Error: dto.KindBadRequest}
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorResponse{Error: dto.KindUnauthorized}
	case errors.Is(err, model.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, dto.ErrorResponse{Error: dto.KindPersistenceUnavailable}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Error: dto.KindInternal}
	}
}

func toGrid(grid model.Grid) [][]string {
	result := make([][]string, len(grid))
	for r, row := range grid {
		result[r] = make([]string, len(row))
		for c, s := range row {
			result[r][c] = string(s)
		}
	}
	return result
}

func toCells(line model.Payline) [][2]int {
	cells := make([][2]int, len(line))
	for i, c := range line {
		cells[i] = [2]int{c.Row, c.Col}
	}
	return cells
}

func toLineWins(lineWins []model.LineWin) []dto.LineWin {
	result := make([]dto.LineWin, len(lineWins))
	for i, l := range lineWins {
		result[i] = dto.LineWin{
			Line:    l.Line,
			Payline: toCells(l.Payline),
			Symbol:  string(l.Symbol),
			Count:   l.Count,
			Payout:  l.Payout,
		}
	}
	return result
}
