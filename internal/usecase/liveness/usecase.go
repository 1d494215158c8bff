package liveness

import (
	"context"
	"sync"
	"time"

	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const defaultPeriod = 15 * time.Second

var ErrBackendUnavailable = errors.New("no backend found")

type useCase struct {
	repo      domain.StatusRepository
	addr      string
	period    time.Duration
	healthy   *atomic.Bool
	listeners []func(healthy bool)
	mu        *sync.Mutex
	logger    *zap.Logger
}

func New(repo domain.StatusRepository, addr string, period time.Duration, logger *zap.Logger) *useCase {
	if period <= 0 {
		period = defaultPeriod
	}
	return &useCase{
		repo:    repo,
		addr:    addr,
		period:  period,
		healthy: atomic.NewBool(true),
		mu:      &sync.Mutex{},
		logger:  logger,
	}
}

func (u *useCase) OnChange(fn func(healthy bool)) {
	u.mu.Lock()
	u.listeners = append(u.listeners, fn)
	u.mu.Unlock()
}

func (u *useCase) Healthy() bool {
	return u.healthy.Load()
}

func (u *useCase) Probe(ctx context.Context) error {
	resp, err := u.repo.Status(ctx, u.addr)
	if err != nil {
		u.logger.Warn("backend health check failed", zap.String("addr", u.addr), zap.Error(err))
		u.set(false)
		return errors.WithMessage(ErrBackendUnavailable, err.Error())
	}
	u.logger.Debug("backend is up", zap.String("addr", u.addr), zap.Int("clients", resp.ClientsCount))
	u.set(true)
	return nil
}

func (u *useCase) CheckBackendHealth(ctx context.Context) error {
	ticker := time.NewTicker(u.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_ = u.Probe(ctx)
		}
	}
}

func (u *useCase) set(healthy bool) {
	if u.healthy.Swap(healthy) == healthy {
		return
	}
	if healthy {
		u.logger.Info("backend is reachable again", zap.String("addr", u.addr))
	}
	u.mu.Lock()
	listeners := append([]func(bool){}, u.listeners...)
	u.mu.Unlock()
	for _, fn := range listeners {
		fn(healthy)
	}
}
