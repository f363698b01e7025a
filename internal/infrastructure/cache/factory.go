package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/infrastructure/config"
)

// LockerFactory creates lockers based on configuration
type LockerFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LockerFactoryOption is a functional option for configuring the factory
type LockerFactoryOption func(*LockerFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LockerFactoryOption {
	return func(f *LockerFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory locker
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) LockerFactoryOption {
	return func(f *LockerFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLockerFactory creates a new factory
func NewLockerFactory(cfg config.RedisConfig, opts ...LockerFactoryOption) *LockerFactory {
	f := &LockerFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisLocker creates a Redis-based locker
func (f *LockerFactory) CreateRedisLocker() (shared.Locker, error) {
	locker, err := NewRedisLocker(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis locker: %w", err)
	}
	return locker, nil
}

// CreateLocker tries Redis first and falls back to an in-memory locker when
// Redis is unavailable and fallback is allowed.
func (f *LockerFactory) CreateLocker() (shared.Locker, error) {
	locker, err := f.CreateRedisLocker()
	if err == nil {
		f.logger.Info("using Redis provisioning locker")
		return locker, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for provisioning locks but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory provisioning locker. "+
		"Concurrent requests for one email on different instances will not be serialized.",
		zap.Error(err),
	)
	return NewInMemoryLocker(), nil
}
