package service

import (
	"context"
	"slot_backend/internal/model"
)

type SlotService interface {
	Spin(ctx context.Context, spinReq model.Spin) (*model.SpinResult, error)
	Balance(ctx context.Context, userID string) (int64, error)
	Paytable() model.Paytable
	Stats() model.Stats
}
