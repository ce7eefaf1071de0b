package env

import (
	"fmt"
	"os"
	"slot_backend/internal/config"
	"strconv"
)

const (
	targetRTPEnvName  = "STATS_TARGET_RTP"
	windowSizeEnvName = "STATS_WINDOW_SIZE"
	checkEveryEnvName = "STATS_CHECK_EVERY"
)

type statsConfig struct {
	targetRTP  float64
	windowSize int
	checkEvery int
}

func NewStatsConfig() (config.StatsConfig, error) {
	cfg := &statsConfig{
		targetRTP:  95,
		windowSize: 500,
		checkEvery: 25,
	}

	if raw := os.Getenv(targetRTPEnvName); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid target rtp %q", raw)
		}
		cfg.targetRTP = v
	}

	if raw := os.Getenv(windowSizeEnvName); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid stats window size %q", raw)
		}
		cfg.windowSize = v
	}

	if raw := os.Getenv(checkEveryEnvName); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid stats check period %q", raw)
		}
		cfg.checkEvery = v
	}

	return cfg, nil
}

func (s *statsConfig) TargetRTP() float64 {
	return s.targetRTP
}

func (s *statsConfig) WindowSize() int {
	return s.windowSize
}

func (s *statsConfig) CheckEvery() int {
	return s.checkEvery
}
