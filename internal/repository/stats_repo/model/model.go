package model

import "github.com/shopspring/decimal"

// Состояние статистики слота
type CasinoState struct {
	TotalSpins  int64 // Сколько всего спинов сделано
	TotalBet    int64 // Сумма всех ставок
	TotalPayout int64 // Сумма всех выплат

	CurrentRTP decimal.Decimal // Текущий RTP = (TotalPayout/TotalBet)*100
	TargetRTP  decimal.Decimal // Ожидаемый RTP таблиц (например 95%)

	DriftMode      bool   // RTP окна ушел от целевого за критический порог
	DriftDirection string // "high" или "low"

	SpinWindow []SpinResult    // Окно последних спинов для анализа
	WindowRTP  decimal.Decimal // RTP в окне последних спинов
	WindowSize int             // Размер окна
}

// Результат спина для окна
type SpinResult struct {
	Bet    int64
	Payout int64
}
