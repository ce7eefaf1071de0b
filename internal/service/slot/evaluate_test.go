package slot

import (
	"math"
	"testing"

	"slot_backend/internal/config/env"
	"slot_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// filledGrid - поле 3x5 из одного символа
func filledGrid(sym model.Symbol) model.Grid {
	grid := make(model.Grid, 3)
	for r := range grid {
		grid[r] = []model.Symbol{sym, sym, sym, sym, sym}
	}
	return grid
}

func middleRow(pt model.Paytable) []model.Payline {
	return pt.Paylines[1:2]
}

func TestEvaluate_FiveOfAKind(t *testing.T) {
	pt := env.DefaultPaytable()
	e := NewEvaluator(pt)

	for _, sym := range []model.Symbol{"🍒", "7️⃣", "💎"} {
		out := e.Evaluate(filledGrid(sym), middleRow(pt), 7)
		want := 7 * pt.PayoutFor(sym)[5]
		assert.Equal(t, want, out.TotalWin, "symbol %s", sym)
		require.Len(t, out.LineWins, 1)
		assert.Equal(t, 5, out.LineWins[0].Count)
		assert.Equal(t, sym, out.LineWins[0].Symbol)
	}
}

func TestEvaluate_AllLinesPay(t *testing.T) {
	pt := env.DefaultPaytable()
	e := NewEvaluator(pt)

	out := e.Evaluate(filledGrid("🍋"), pt.Paylines, 2)
	assert.Equal(t, int64(5*2*10), out.TotalWin)
	require.Len(t, out.LineWins, 5)
	for i, lw := range out.LineWins {
		assert.Equal(t, i+1, lw.Line)
	}
}

func TestEvaluate_ThreeCherries(t *testing.T) {
	pt := env.DefaultPaytable()
	e := NewEvaluator(pt)

	grid := filledGrid("🍊")
	grid[1] = []model.Symbol{"🍒", "🍒", "🍒", "🍋", "🍊"}

	out := e.Evaluate(grid, middleRow(pt), 10)
	assert.Equal(t, int64(20), out.TotalWin)
	require.Len(t, out.LineWins, 1)
	assert.Equal(t, 3, out.LineWins[0].Count)
}

func TestEvaluate_RunMustStartAtFirstColumn(t *testing.T) {
	pt := env.DefaultPaytable()
	e := NewEvaluator(pt)

	grid := filledGrid("🍊")
	grid[1] = []model.Symbol{"🍋", "🍒", "🍒", "🍒", "🍒"}

	out := e.Evaluate(grid, middleRow(pt), 10)
	assert.Zero(t, out.TotalWin)
	assert.Empty(t, out.LineWins)
}

func TestEvaluate_TwoOfAKind(t *testing.T) {
	grid := filledGrid("🍊")
	grid[1] = []model.Symbol{"🍒", "🍒", "🍋", "🍋", "🍋"}

	pt := env.DefaultPaytable()
	out := NewEvaluator(pt).Evaluate(grid, middleRow(pt), 10)
	assert.Zero(t, out.TotalWin)

	pt.TwoOfAKind = true
	out = NewEvaluator(pt).Evaluate(grid, middleRow(pt), 10)
	assert.Equal(t, int64(10), out.TotalWin)
	require.Len(t, out.LineWins, 1)
	assert.Equal(t, 2, out.LineWins[0].Count)
}

func TestEvaluate_LongRunUsesLargestKey(t *testing.T) {
	pt := env.DefaultPaytable()
	pt.DefaultPayout = model.PayoutTable{3: 4}
	e := NewEvaluator(pt)

	out := e.Evaluate(filledGrid("🍋"), middleRow(pt), 3)
	assert.Equal(t, int64(12), out.TotalWin)
}

func TestEvaluate_Scatter(t *testing.T) {
	grid := filledGrid("🍊")
	grid[1] = []model.Symbol{"🍋", "🍒", "🍋", "🍒", "🍋"}
	grid[0][1] = "⭐"
	grid[2][3] = "⭐"
	grid[0][4] = "⭐"

	pt := env.DefaultPaytable()
	out := NewEvaluator(pt).Evaluate(grid, middleRow(pt), 5)
	assert.Zero(t, out.TotalWin)
	assert.Zero(t, out.ScatterCount)

	pt.Scatter.Enabled = true
	out = NewEvaluator(pt).Evaluate(grid, middleRow(pt), 5)
	assert.Equal(t, 3, out.ScatterCount)
	assert.Equal(t, int64(10), out.ScatterWin)
	assert.Equal(t, int64(10), out.TotalWin)

	grid[0][2] = "⭐"
	out = NewEvaluator(pt).Evaluate(grid, middleRow(pt), 5)
	assert.Equal(t, 4, out.ScatterCount)
	assert.Equal(t, int64(25), out.ScatterWin)
}

func TestEvaluate_ScatterBelowThreshold(t *testing.T) {
	grid := filledGrid("🍊")
	grid[1] = []model.Symbol{"🍋", "🍒", "🍋", "🍒", "🍋"}
	grid[0][0] = "⭐"
	grid[2][2] = "⭐"

	pt := env.DefaultPaytable()
	pt.Scatter.Enabled = true
	out := NewEvaluator(pt).Evaluate(grid, middleRow(pt), 5)
	assert.Equal(t, 2, out.ScatterCount)
	assert.Zero(t, out.ScatterWin)
	assert.Zero(t, out.TotalWin)
}

func TestEvaluate_MaxWinCap(t *testing.T) {
	pt := env.DefaultPaytable()
	pt.MaxWinMultiplier = 50
	e := NewEvaluator(pt)

	out := e.Evaluate(filledGrid("💎"), pt.Paylines, 2)
	assert.Equal(t, int64(100), out.TotalWin)
	require.Len(t, out.LineWins, 5)

	pt.MaxWinMultiplier = 0
	out = NewEvaluator(pt).Evaluate(filledGrid("💎"), pt.Paylines, 2)
	assert.Equal(t, int64(5*2*100), out.TotalWin)
}

func TestEvaluate_LargestSafeStake(t *testing.T) {
	pt := env.DefaultPaytable()
	pt.MaxBet = math.MaxInt64 / (100 * 5)
	require.NoError(t, env.ValidatePaytable(pt))

	active := ActivePaylines(pt.Paylines, pt.MaxBet, pt.MaxBet)
	require.Len(t, active, 5)

	out := NewEvaluator(pt).Evaluate(filledGrid("💎"), active, pt.MaxBet)
	assert.Equal(t, 5*100*pt.MaxBet, out.TotalWin)
	assert.Positive(t, out.TotalWin)
}

func TestEvaluate_RunLengthProperty(t *testing.T) {
	base := env.DefaultPaytable()
	symbols := make([]model.Symbol, len(base.Weights))
	for i, sw := range base.Weights {
		symbols[i] = sw.Symbol
	}

	rapid.Check(t, func(t *rapid.T) {
		pt := env.DefaultPaytable()
		pt.TwoOfAKind = rapid.Bool().Draw(t, "twoOfAKind")
		sym := rapid.SampledFrom(symbols).Draw(t, "symbol")
		breaker := rapid.SampledFrom(symbols).Filter(func(s model.Symbol) bool { return s != sym }).Draw(t, "breaker")
		run := rapid.IntRange(1, pt.Columns).Draw(t, "run")
		stake := rapid.Int64Range(1, pt.MaxBet).Draw(t, "stake")

		grid := filledGrid(sym)
		if run < pt.Columns {
			grid[1][run] = breaker
		}

		var want int64
		switch {
		case run >= 3:
			want = stake * pt.PayoutFor(sym)[run]
		case run == 2 && pt.TwoOfAKind:
			want = stake
		}

		out := NewEvaluator(pt).Evaluate(grid, middleRow(pt), stake)
		if out.TotalWin != want {
			t.Fatalf("run %d of %s at stake %d: got %d, want %d", run, sym, stake, out.TotalWin, want)
		}
	})
}
