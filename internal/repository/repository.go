package repository

import (
	"context"
	"slot_backend/internal/model"
)

// SettleFunc получает текущий баланс и возвращает новый.
// Ошибка из SettleFunc отменяет запись, баланс остается прежним
type SettleFunc func(balance int64) (int64, error)

type BalanceRepository interface {
	// GetBalance - баланс пользователя, 0 если записи нет
	GetBalance(ctx context.Context, userID string) (int64, error)
	// Settle выполняет read-modify-write баланса одного пользователя
	// атомарно: параллельные Settle для того же userID не пересекаются
	Settle(ctx context.Context, userID string, fn SettleFunc) (int64, error)
}

type StatsRepository interface {
	UpdateState(bet, payout int64)
	Snapshot() model.Stats
	CheckDrift() (drifted bool, direction string)
}
