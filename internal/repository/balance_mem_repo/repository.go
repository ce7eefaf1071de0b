package balance_mem_repo

import (
	"context"
	"slot_backend/internal/repository"
	"sync"
)

// Repo - балансы в памяти процесса.
// Settle держит мьютекс пользователя на все время read-modify-write
type Repo struct {
	mtx      sync.RWMutex
	balances map[string]int64
	locks    sync.Map // userID -> *sync.Mutex
}

func NewBalanceRepository() *Repo {
	return &Repo{
		balances: make(map[string]int64),
	}
}

// Seed - задает начальный баланс (для локального запуска и тестов)
func (r *Repo) Seed(userID string, balance int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.balances[userID] = balance
}

func (r *Repo) GetBalance(_ context.Context, userID string) (int64, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.balances[userID], nil
}

func (r *Repo) Settle(ctx context.Context, userID string, fn repository.SettleFunc) (int64, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	current, _ := r.GetBalance(ctx, userID)
	balance, err := fn(current)
	if err != nil {
		return current, err
	}

	r.mtx.Lock()
	r.balances[userID] = balance
	r.mtx.Unlock()

	return balance, nil
}

func (r *Repo) userLock(userID string) *sync.Mutex {
	v, _ := r.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
