package reconciler

import (
	"context"
	"sync"

	"github.com/kiryu-dev/chess-client/internal/codec"
	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/kiryu-dev/chess-client/internal/position"
	"github.com/kiryu-dev/chess-client/internal/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	chess    *store.Store[domain.Chess]
	events   *store.Store[domain.Event]
	animator domain.Animator
	conn     domain.Conn
	mu       *sync.RWMutex
	logger   *zap.Logger
}

func New(animator domain.Animator, logger *zap.Logger) *useCase {
	return &useCase{
		chess:    store.New(domain.StartingPosition()),
		events:   store.New(domain.Event{Kind: domain.EventDisconnected}),
		animator: animator,
		mu:       &sync.RWMutex{},
		logger:   logger,
	}
}

func (u *useCase) Chess() domain.Chess {
	return u.chess.Load()
}

func (u *useCase) SubscribeChess(fn func(domain.Chess)) func() {
	return u.chess.Subscribe(fn)
}

func (u *useCase) SubscribeEvents(fn func(domain.Event)) func() {
	return u.events.Subscribe(fn)
}

func (u *useCase) Conn() domain.Conn {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.conn
}

func (u *useCase) Run(ctx context.Context, conn domain.Conn) error {
	u.setConn(conn)
	defer u.setConn(nil)
	stop := context.AfterFunc(ctx, conn.Close)
	defer stop()
	for {
		data, err := conn.ReadMessage()
		switch {
		case errors.Is(err, domain.ErrConnectionClosed):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return errors.WithMessage(err, "read message from server")
		}
		u.Handle(data)
	}
}

func (u *useCase) Handle(data []byte) {
	msg, err := codec.DecodeMessage(data)
	if err != nil {
		u.logger.Warn("rejected inbound message", zap.Error(err))
		u.events.Replace(domain.Event{Kind: domain.EventInvalid, Err: err})
		return
	}
	switch m := msg.(type) {
	case domain.InitialStateMessage:
		u.chess.Replace(m.Chess)
		u.logger.Info("applied initial state", zap.Int("turn", m.Chess.TurnNumber))
		u.events.Replace(domain.Event{Kind: domain.EventInitialState, Type: m.MessageType(), Chess: m.Chess})
	case domain.UpdateMessage:
		var (
			change  domain.Change
			changed bool
		)
		u.chess.Update(func(prev domain.Chess) domain.Chess {
			change, changed = position.DetectChange(prev, m.Chess)
			return m.Chess
		})
		event := domain.Event{Kind: domain.EventUpdate, Type: m.MessageType(), Chess: m.Chess}
		if changed {
			event.Change = &change
			u.animator.StartAnimation(change.From.Label(), change.To.Label(), change.Moving.Kind)
		}
		u.logger.Info("applied update", zap.Int("turn", m.Chess.TurnNumber), zap.Bool("animated", event.Change != nil))
		u.events.Replace(event)
	case domain.ResetMessage:
		u.animator.EndAnimation()
		u.chess.Replace(m.Chess)
		u.logger.Info("applied reset")
		u.events.Replace(domain.Event{Kind: domain.EventReset, Type: m.MessageType(), Chess: m.Chess})
	case domain.OtherMessage:
		u.logger.Info("ignored message", zap.String("type", m.Type), zap.Error(domain.ErrUnknownMessageType))
		u.events.Replace(domain.Event{Kind: domain.EventOther, Type: m.Type, Err: domain.ErrUnknownMessageType})
	}
}

// Send drops the message when the connection is not open.
func (u *useCase) Send(message string) {
	conn := u.Conn()
	if conn == nil {
		u.logger.Warn("message not sent", zap.Error(domain.ErrChannelUnavailable))
		return
	}
	if err := conn.WriteMessage([]byte(message)); err != nil {
		u.logger.Warn("message not sent", zap.Error(err))
	}
}

func (u *useCase) setConn(conn domain.Conn) {
	u.mu.Lock()
	u.conn = conn
	u.mu.Unlock()
	kind := domain.EventConnected
	if conn == nil {
		kind = domain.EventDisconnected
	}
	u.logger.Info("connection state changed", zap.Stringer("state", kind))
	u.events.Replace(domain.Event{Kind: kind})
}
