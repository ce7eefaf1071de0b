package config

import (
	"slot_backend/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type SlotConfig interface {
	Paytable() model.Paytable
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	Migrate() bool
}

type RedisConfig interface {
	Address() string
	Password() string
	DB() int
}

type StorageConfig interface {
	Driver() string
}

type AuthConfig interface {
	TokenSecretKey() []byte
}

type LogConfig interface {
	Level() string
	Format() string
}

type StatsConfig interface {
	TargetRTP() float64
	WindowSize() int
	CheckEvery() int
}
