package slot

import (
	"slot_backend/internal/config"
	"slot_backend/internal/model"
	"slot_backend/internal/repository"
	"slot_backend/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type serv struct {
	paytable    model.Paytable
	generator   *Generator
	evaluator   *Evaluator
	balanceRepo repository.BalanceRepository
	statsRepo   repository.StatsRepository
	logger      *zap.Logger
	newRoundID  func() string
}

type Option func(*serv)

// WithRandom подменяет источник случайности генератора
func WithRandom(intN IntN) Option {
	return func(s *serv) {
		s.generator = NewGenerator(s.paytable.Weights, intN)
	}
}

// NewSlotService Создать слот по таблицам из конфигурации
func NewSlotService(
	cfg config.SlotConfig,
	balanceRepo repository.BalanceRepository,
	statsRepo repository.StatsRepository,
	logger *zap.Logger,
	opts ...Option,
) service.SlotService {
	pt := cfg.Paytable()
	s := &serv{
		paytable:    pt,
		generator:   NewGenerator(pt.Weights, nil),
		evaluator:   NewEvaluator(pt),
		balanceRepo: balanceRepo,
		statsRepo:   statsRepo,
		logger:      logger.Named("slot"),
		newRoundID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serv) Paytable() model.Paytable {
	return s.paytable
}

func (s *serv) Stats() model.Stats {
	return s.statsRepo.Snapshot()
}
