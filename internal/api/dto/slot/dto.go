package slot

type SpinRequest struct {
	Bet int64 `json:"bet"` // Ставка, приводится к [1, MAX_BET]
}

type SpinResponse struct {
	RoundID      string     `json:"round_id"`
	Grid         [][]string `json:"grid"`          // grid[row][col]
	Stake        int64      `json:"stake"`         // Ставка после ограничения
	ActiveLines  int        `json:"active_lines"`  // Открыто линий
	LineWins     []LineWin  `json:"line_wins"`     // Выигрышные линии
	ScatterCount int        `json:"scatter_count"` // Кол-во скаттеров
	ScatterWin   int64      `json:"scatter_win"`   // Выплата по скаттерам
	Win          int64      `json:"win"`           // Общая выплата
	Balance      int64      `json:"balance"`       // Баланс после
}

type LineWin struct {
	Line    int      `json:"line"`    // 1..N
	Payline [][2]int `json:"payline"` // [row, col]
	Symbol  string   `json:"symbol"`
	Count   int      `json:"count"`
	Payout  int64    `json:"payout"`
}

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

type SymbolWeight struct {
	Symbol string `json:"symbol"`
	Weight int    `json:"weight"`
}

type Scatter struct {
	Enabled  bool          `json:"enabled"`
	Symbol   string        `json:"symbol"`
	MinCount int           `json:"min_count"`
	Payouts  map[int]int64 `json:"payouts"`
}

type PaytableResponse struct {
	Rows             int                      `json:"rows"`
	Columns          int                      `json:"columns"`
	MaxBet           int64                    `json:"max_bet"`
	Symbols          []SymbolWeight           `json:"symbols"`
	Paylines         [][][2]int               `json:"paylines"`
	DefaultPayout    map[int]int64            `json:"default_payout"`
	SymbolPayouts    map[string]map[int]int64 `json:"symbol_payouts"`
	TwoOfAKind       bool                     `json:"two_of_a_kind"`
	Scatter          Scatter                  `json:"scatter"`
	MaxWinMultiplier int64                    `json:"max_win_multiplier"`
}

type StatsResponse struct {
	TotalSpins  int64  `json:"total_spins"`
	TotalBet    int64  `json:"total_bet"`
	TotalPayout int64  `json:"total_payout"`
	CurrentRTP  string `json:"current_rtp"` // %
	WindowRTP   string `json:"window_rtp"`  // % по последним WindowSize спинам
	WindowSize  int    `json:"window_size"`
	TargetRTP   string `json:"target_rtp"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Коды ошибок в ErrorResponse
const (
	KindInsufficientFunds      = "InsufficientFunds"
	KindBadRequest             = "BadRequest"
	KindUnauthorized           = "Unauthorized"
	KindPersistenceUnavailable = "PersistenceUnavailable"
	KindInternal               = "Internal"
)

type ErrorResponse struct {
	Error string `json:"error"` // Kind*
}
