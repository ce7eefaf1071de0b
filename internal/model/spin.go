package model

// Spin - запрос на спин
type Spin struct {
	UserID string
	Bet    int64
}

// LineWin - выигрышная линия (только для подсветки на клиенте)
type LineWin struct {
	Line    int // 1..N в порядке таблицы линий
	Payline Payline
	Symbol  Symbol
	Count   int
	Payout  int64
}

// Outcome - результат оценки поля
type Outcome struct {
	TotalWin     int64
	LineWins     []LineWin
	ScatterCount int
	ScatterWin   int64
}

// SpinResult - результат спина
type SpinResult struct {
	RoundID      string
	Grid         Grid
	Stake        int64
	ActiveLines  int
	LineWins     []LineWin
	ScatterCount int
	ScatterWin   int64
	Win          int64
	Balance      int64
}
