package model

import "errors"

var (
	// ErrInsufficientFunds - ставка больше баланса, состояние не изменено
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrPersistenceUnavailable - временный отказ хранилища баланса, можно повторить
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrBadRequest             = errors.New("bad request")
	// ErrInvalidConfig - ошибка конфигурации, фатальна на старте
	ErrInvalidConfig = errors.New("invalid config")
)
