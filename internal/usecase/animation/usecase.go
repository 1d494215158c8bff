package animation

import (
	"sync"
	"time"

	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/kiryu-dev/chess-client/internal/store"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	PieceMoveDuration   = 100 * time.Millisecond
	InvalidMoveDuration = 300 * time.Millisecond
)

type useCase struct {
	state    *store.Store[domain.AnimationState]
	layout   domain.Layout
	duration time.Duration
	seq      *atomic.Uint64
	timer    *time.Timer
	mu       *sync.Mutex
	logger   *zap.Logger
}

func New(layout domain.Layout, duration time.Duration, logger *zap.Logger) *useCase {
	if duration <= 0 {
		duration = PieceMoveDuration
	}
	return &useCase{
		state:    store.New(domain.AnimationState{}),
		layout:   layout,
		duration: duration,
		seq:      atomic.NewUint64(0),
		mu:       &sync.Mutex{},
		logger:   logger,
	}
}

func (u *useCase) State() domain.AnimationState {
	return u.state.Load()
}

// fn runs under the sequencer lock.
func (u *useCase) Subscribe(fn func(domain.AnimationState)) func() {
	return u.state.Subscribe(fn)
}

func (u *useCase) StartAnimation(from, to string, piece domain.Kind) {
	u.start(domain.AnimationState{
		FromSquare: from,
		ToSquare:   to,
		Piece:      piece,
		Start:      u.position(from),
		End:        u.position(to),
	}, u.duration)
}

func (u *useCase) Shake(square string) {
	pos := u.position(square)
	u.start(domain.AnimationState{
		FromSquare: square,
		ToSquare:   square,
		Invalid:    true,
		Start:      pos,
		End:        pos,
	}, InvalidMoveDuration)
}

func (u *useCase) EndAnimation() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seq.Inc()
	u.stopTimer()
	u.state.Replace(domain.AnimationState{})
}

func (u *useCase) start(state domain.AnimationState, d time.Duration) {
	u.mu.Lock()
	defer u.mu.Unlock()
	id := u.seq.Inc()
	u.stopTimer()
	state.ID = id
	state.IsAnimating = true
	u.state.Replace(state)
	u.logger.Debug("animation started",
		zap.Uint64("id", id),
		zap.String("from", state.FromSquare),
		zap.String("to", state.ToSquare))
	from, to := state.FromSquare, state.ToSquare
	u.timer = time.AfterFunc(d, func() {
		u.expire(id, from, to)
	})
}

func (u *useCase) expire(id uint64, from, to string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.seq.Load() != id {
		return
	}
	current := u.state.Load()
	if !current.IsAnimating || current.FromSquare != from || current.ToSquare != to {
		return
	}
	current.IsAnimating = false
	u.timer = nil
	u.state.Replace(current)
}

func (u *useCase) stopTimer() {
	if u.timer != nil {
		u.timer.Stop()
		u.timer = nil
	}
}

func (u *useCase) position(square string) domain.Point {
	if u.layout == nil {
		return domain.Point{}
	}
	p, ok := u.layout.SquarePosition(square)
	if !ok {
		u.logger.Debug("square has no layout position", zap.String("square", square))
	}
	return p
}
