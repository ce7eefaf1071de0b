package env

import (
	"fmt"
	"os"
	"slot_backend/internal/config"
)

const (
	balanceStoreEnvName = "BALANCE_STORE"

	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

type storageConfig struct {
	driver string
}

// NewStorageConfig - какое хранилище балансов использовать
func NewStorageConfig() (config.StorageConfig, error) {
	driver := os.Getenv(balanceStoreEnvName)
	if len(driver) == 0 {
		driver = StoragePostgres
	}

	switch driver {
	case StoragePostgres, StorageRedis, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown balance store %q", driver)
	}

	return &storageConfig{driver: driver}, nil
}

func (s *storageConfig) Driver() string {
	return s.driver
}
