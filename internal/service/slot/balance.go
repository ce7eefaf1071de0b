package slot

import (
	"context"
	"slot_backend/internal/model"

	"go.uber.org/zap"
)

// Balance - текущий баланс пользователя
func (s *serv) Balance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, model.ErrUnauthorized
	}

	balance, err := s.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		s.logger.Error("get balance failed", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}
