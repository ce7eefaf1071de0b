package app

import (
	"context"
	"net/http"
	slotAPI "slot_backend/internal/api/slot"
	"slot_backend/internal/config"
	"slot_backend/internal/config/env"
	"slot_backend/internal/middleware"
	"slot_backend/internal/repository"
	"slot_backend/internal/repository/balance_mem_repo"
	"slot_backend/internal/repository/balance_redis_repo"
	"slot_backend/internal/repository/balance_repo"
	"slot_backend/internal/repository/stats_repo"
	"slot_backend/internal/service"
	"slot_backend/internal/service/slot"
	"slot_backend/migrations"
	"slot_backend/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/compress/gzhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Logger
	logCfg config.LogConfig
	logger *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis
	redisCfg    config.RedisConfig
	redisClient *redis.Client

	// Balance store
	storageCfg  config.StorageConfig
	balanceRepo repository.BalanceRepository

	// Slot bits
	slotCfg   config.SlotConfig
	statsCfg  config.StatsConfig
	statsRepo repository.StatsRepository
	slotServ  service.SlotService
	slotHand  *slotAPI.Handler

	// Auth
	authCfg config.AuthConfig

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router

	closers []func()
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		l, err := logger.New(sp.LogCfg().Level(), sp.LogCfg().Format())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = l
	}
	return sp.logger
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}

		if sp.PgConfig().Migrate() {
			if err := migrations.Up(ctx, dbc); err != nil {
				panic("failed to apply migrations: " + err.Error())
			}
			sp.Logger().Info("migrations applied")
		}

		sp.dbClient = dbc
		sp.closers = append(sp.closers, dbc.Close)
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		rdb := redis.NewClient(&redis.Options{
			Addr:     sp.RedisCfg().Address(),
			Password: sp.RedisCfg().Password(),
			DB:       sp.RedisCfg().DB(),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = rdb
		sp.closers = append(sp.closers, func() { _ = rdb.Close() })
	}
	return sp.redisClient
}

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

// BalanceRepository - хранилище балансов по BALANCE_STORE
func (sp *ServiceProvider) BalanceRepository(ctx context.Context) repository.BalanceRepository {
	if sp.balanceRepo == nil {
		switch sp.StorageCfg().Driver() {
		case env.StorageRedis:
			sp.balanceRepo = balance_redis_repo.NewBalanceRepository(sp.RedisClient(ctx))
		case env.StorageMemory:
			sp.balanceRepo = balance_mem_repo.NewBalanceRepository()
		default:
			sp.balanceRepo = balance_repo.NewBalanceRepository(sp.DBClient(ctx), sp.TXManager(ctx))
		}
		sp.Logger().Info("balance store selected", zap.String("driver", sp.StorageCfg().Driver()))
	}
	return sp.balanceRepo
}

func (sp *ServiceProvider) SlotCfg() config.SlotConfig {
	if sp.slotCfg == nil {
		cfg, err := env.NewSlotConfig()
		if err != nil {
			panic("failed to get slot config: " + err.Error())
		}

		sp.slotCfg = cfg
	}
	return sp.slotCfg
}

func (sp *ServiceProvider) StatsCfg() config.StatsConfig {
	if sp.statsCfg == nil {
		cfg, err := env.NewStatsConfig()
		if err != nil {
			panic("failed to get stats config: " + err.Error())
		}
		sp.statsCfg = cfg
	}
	return sp.statsCfg
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		cfg := sp.StatsCfg()
		sp.statsRepo = stats_repo.NewStatsRepository(cfg.TargetRTP(), cfg.WindowSize(), cfg.CheckEvery())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) SlotService(ctx context.Context) service.SlotService {
	if sp.slotServ == nil {
		sp.slotServ = slot.NewSlotService(sp.SlotCfg(), sp.BalanceRepository(ctx), sp.StatsRepository(), sp.Logger())
	}
	return sp.slotServ
}

func (sp *ServiceProvider) SlotHandler(ctx context.Context) *slotAPI.Handler {
	if sp.slotHand == nil {
		sp.slotHand = slotAPI.NewHandler(slotAPI.HandlerDeps{
			Serv:   sp.SlotService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.slotHand
}

func (sp *ServiceProvider) AuthCfg() config.AuthConfig {
	if sp.authCfg == nil {
		cfg, err := env.NewAuthConfig()
		if err != nil {
			panic("failed to get auth config: " + err.Error())
		}
		sp.authCfg = cfg
	}
	return sp.authCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimid.RequestID)
		r.Use(chimid.Recoverer)
		r.Use(middleware.AccessLog(sp.Logger().Named("access")))

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))
		r.Use(func(next http.Handler) http.Handler {
			return gzhttp.GzipHandler(next)
		})

		slotHandler := sp.SlotHandler(ctx)

		r.Get("/health", slotHandler.Health)
		r.Get("/paytable", slotHandler.Paytable)

		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.AuthCfg().TokenSecretKey(), sp.Logger().Named("auth")))
			rr.Get("/balance", slotHandler.Balance)
			rr.Post("/spin", slotHandler.Spin)
			rr.Get("/stats", slotHandler.Stats)
		})

		sp.router = r
	}

	return sp.router
}

// Close закрывает клиенты в обратном порядке
func (sp *ServiceProvider) Close() {
	for i := len(sp.closers) - 1; i >= 0; i-- {
		sp.closers[i]()
	}
	if sp.logger != nil {
		_ = sp.logger.Sync()
	}
}
