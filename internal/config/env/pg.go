package env

import (
	"errors"
	"os"
	"slot_backend/internal/config"
	"strconv"
)

const (
	dsnName     = "PG_DSN"
	migrateName = "PG_MIGRATE"
)

type pgConfig struct {
	dsn     string
	migrate bool
}

func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	migrate := true
	if raw := os.Getenv(migrateName); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.New("invalid " + migrateName + ": " + raw)
		}
		migrate = v
	}

	return &pgConfig{
		dsn:     dsn,
		migrate: migrate,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) Migrate() bool {
	return cfg.migrate
}
