package balance_repo

import (
	"context"
	"errors"
	"fmt"
	"slot_backend/internal/model"
	"slot_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table      = "accounts"
	colUserID  = "user_id"
	colBalance = "balance"
	colUpdated = "updated_at"
)

type repo struct {
	dbc       *pgxpool.Pool
	txManager trm.Manager
	getter    *trmpgx.CtxGetter
}

func NewBalanceRepository(dbc *pgxpool.Pool, txManager trm.Manager) repository.BalanceRepository {
	return &repo{
		dbc:       dbc,
		txManager: txManager,
		getter:    trmpgx.DefaultCtxGetter,
	}
}

// GetBalance - получение баланса пользователя по его ID.
// Возвращает 0, если записи нет
func (r *repo) GetBalance(ctx context.Context, userID string) (int64, error) {
	// Формируем запрос
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	return r.queryBalance(ctx, query)
}

// Settle - списание и начисление внутри одной транзакции.
// Строка блокируется SELECT ... FOR UPDATE до коммита
func (r *repo) Settle(ctx context.Context, userID string, fn repository.SettleFunc) (int64, error) {
	var balance int64

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		query := sq.Select(colBalance).
			From(table).
			Where(sq.Eq{colUserID: userID}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(sq.Dollar)

		current, err := r.queryBalance(txCtx, query)
		if err != nil {
			return err
		}

		balance, err = fn(current)
		if err != nil {
			balance = current
			return err
		}

		return r.upsertBalance(txCtx, userID, balance)
	})
	if err != nil {
		if errors.Is(err, model.ErrPersistenceUnavailable) || isDomainError(err) {
			return balance, err
		}
		// Ошибки begin/commit приходят от менеджера транзакций
		return 0, unavailable(err)
	}

	return balance, nil
}

func (r *repo) queryBalance(ctx context.Context, query sq.SelectBuilder) (int64, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, unavailable(err)
	}

	return balance, nil
}

// upsertBalance - записывает итоговый баланс одной командой
func (r *repo) upsertBalance(ctx context.Context, userID string, balance int64) error {
	query := sq.Insert(table).
		Columns(colUserID, colBalance).
		Values(userID, balance).
		Suffix("ON CONFLICT (" + colUserID + ") DO UPDATE SET " +
			colBalance + " = EXCLUDED." + colBalance + ", " + colUpdated + " = now()").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return unavailable(err)
	}

	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", model.ErrPersistenceUnavailable, err)
}

func isDomainError(err error) bool {
	return errors.Is(err, model.ErrInsufficientFunds)
}
