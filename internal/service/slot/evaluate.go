package slot

import "slot_backend/internal/model"

// Evaluator считает выигрыш по линиям и скаттерам
type Evaluator struct {
	pt model.Paytable
}

func NewEvaluator(pt model.Paytable) *Evaluator {
	return &Evaluator{pt: pt}
}

// Evaluate оценивает поле по активным линиям.
// Серия считается только от первой колонки до первого несовпадения
func (e *Evaluator) Evaluate(grid model.Grid, active []model.Payline, stake int64) model.Outcome {
	var out model.Outcome

	for i, line := range active {
		first, count := runOnLine(grid, line)

		var payout int64
		switch {
		case count >= 3:
			payout = stake * e.pt.PayoutFor(first).Multiplier(count)
		case count == 2 && e.pt.TwoOfAKind:
			payout = stake
		}
		if payout == 0 {
			continue
		}

		out.TotalWin += payout
		out.LineWins = append(out.LineWins, model.LineWin{
			Line:    i + 1,
			Payline: line,
			Symbol:  first,
			Count:   count,
			Payout:  payout,
		})
	}

	if e.pt.Scatter.Enabled {
		out.ScatterCount = countSymbol(grid, e.pt.Scatter.Symbol)
		if out.ScatterCount >= e.pt.Scatter.MinCount {
			out.ScatterWin = stake * e.pt.Scatter.Payouts.Multiplier(out.ScatterCount)
			out.TotalWin += out.ScatterWin
		}
	}

	out.TotalWin = e.applyMaxWin(out.TotalWin, stake)
	return out
}

// runOnLine возвращает первый символ линии и длину серии от него
func runOnLine(grid model.Grid, line model.Payline) (model.Symbol, int) {
	if len(line) == 0 {
		return "", 0
	}
	first := grid[line[0].Row][line[0].Col]
	count := 1
	for _, c := range line[1:] {
		if grid[c.Row][c.Col] != first {
			break
		}
		count++
	}
	return first, count
}

func countSymbol(grid model.Grid, sym model.Symbol) int {
	cnt := 0
	for _, row := range grid {
		for _, s := range row {
			if s == sym {
				cnt++
			}
		}
	}
	return cnt
}

// applyMaxWin применяет лимит выигрыша в кратности ставки, 0 - без лимита
func (e *Evaluator) applyMaxWin(amount, stake int64) int64 {
	if e.pt.MaxWinMultiplier <= 0 {
		return amount
	}
	maxPay := e.pt.MaxWinMultiplier * stake
	if amount > maxPay {
		return maxPay
	}
	return amount
}
