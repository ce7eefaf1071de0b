package balance_redis_repo

import (
	"context"
	"errors"
	"fmt"
	"slot_backend/internal/model"
	"slot_backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "coins:"
	fieldBalance = "balance"

	// maxRetries - сколько раз повторять CAS при конфликте
	maxRetries = 16
)

var errConflict = errors.New("balance update conflict")

type repo struct {
	rdb redis.UniversalClient
}

func NewBalanceRepository(rdb redis.UniversalClient) repository.BalanceRepository {
	return &repo{rdb: rdb}
}

func key(userID string) string {
	return keyPrefix + userID
}

// GetBalance - баланс из хэша coins:<userID>, 0 если ключа нет
func (r *repo) GetBalance(ctx context.Context, userID string) (int64, error) {
	balance, err := r.rdb.HGet(ctx, key(userID), fieldBalance).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, unavailable(err)
	}
	return balance, nil
}

// Settle - WATCH/MULTI: если ключ изменился между чтением и записью,
// транзакция не применяется и попытка повторяется
func (r *repo) Settle(ctx context.Context, userID string, fn repository.SettleFunc) (int64, error) {
	k := key(userID)

	var (
		balance int64
		fnErr   error
	)

	txf := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, k, fieldBalance).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		balance, fnErr = fn(current)
		if fnErr != nil {
			balance = current
			return fnErr
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, fieldBalance, balance)
			return nil
		})
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := r.rdb.Watch(ctx, txf, k)
		if err == nil {
			return balance, nil
		}
		if fnErr != nil {
			return balance, fnErr
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return 0, unavailable(err)
	}

	return 0, unavailable(errConflict)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", model.ErrPersistenceUnavailable, err)
}
