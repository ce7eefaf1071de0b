package model

import "github.com/shopspring/decimal"

// Stats - снимок статистики спинов
type Stats struct {
	TotalSpins  int64
	TotalBet    int64
	TotalPayout int64
	CurrentRTP  decimal.Decimal
	WindowRTP   decimal.Decimal
	WindowSize  int
	TargetRTP   decimal.Decimal
}
