package env

import (
	"fmt"
	"os"
	"slot_backend/internal/config"
	"strconv"
)

const (
	redisAddrEnvName     = "REDIS_ADDR"
	redisPasswordEnvName = "REDIS_PASSWORD"
	redisDBEnvName       = "REDIS_DB"

	defaultRedisAddr = "localhost:6379"
)

type redisConfig struct {
	address  string
	password string
	db       int
}

func NewRedisConfig() (config.RedisConfig, error) {
	addr := os.Getenv(redisAddrEnvName)
	if len(addr) == 0 {
		addr = defaultRedisAddr
	}

	db := 0
	if raw := os.Getenv(redisDBEnvName); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid redis db: %w", err)
		}
		db = parsed
	}

	return &redisConfig{
		address:  addr,
		password: os.Getenv(redisPasswordEnvName),
		db:       db,
	}, nil
}

func (r *redisConfig) Address() string {
	return r.address
}

func (r *redisConfig) Password() string {
	return r.password
}

func (r *redisConfig) DB() int {
	return r.db
}
