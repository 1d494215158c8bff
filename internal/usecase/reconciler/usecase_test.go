package reconciler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/chess-client/internal/codec"
	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/kiryu-dev/chess-client/internal/transport/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAnimator struct {
	mu      sync.Mutex
	started [][2]string
	pieces  []domain.Kind
	ended   int
}

func (a *recordingAnimator) StartAnimation(from, to string, piece domain.Kind) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.started = append(a.started, [2]string{from, to})
	a.pieces = append(a.pieces, piece)
}

func (a *recordingAnimator) EndAnimation() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ended++
}

type fakeConn struct {
	frames    chan []byte
	mu        sync.Mutex
	written   []string
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{frames: make(chan []byte, 8)}
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	data, ok := <-c.frames
	if !ok {
		return nil, domain.ErrConnectionClosed
	}
	return data, nil
}

func (c *fakeConn) WriteMessage(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, string(data))
	return nil
}

func (c *fakeConn) Close() {
	c.closeOnce.Do(func() { close(c.frames) })
}

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

func encode(t *testing.T, msg domain.Message) []byte {
	t.Helper()
	data, err := codec.EncodeMessage(msg)
	require.NoError(t, err)
	return data
}

// afterA2A4 is the snapshot the server sends once White has played a2-a4.
func afterA2A4() domain.Chess {
	chess := domain.StartingPosition()
	for file := range chess.Board {
		for rank := range chess.Board[file] {
			chess.Board[file][rank].PossibleMoves = nil
		}
	}
	a2, a4 := domain.Coord{File: 0, Rank: 1}, domain.Coord{File: 0, Rank: 3}
	chess.Board[0][3].Piece = chess.Board[0][1].Piece
	chess.Board[0][1].Piece = domain.NoPiece
	chess.TurnNumber = 1
	chess.ListOfMoves = []domain.MoveRecord{{From: a2, To: a4}}
	chess.LatestMove = &domain.LatestMove{
		From: chess.Board[0][1],
		To:   chess.Board[0][3],
		Side: domain.White,
	}
	return chess
}

func TestNewStartsFromStartingPosition(t *testing.T) {
	u := New(&recordingAnimator{}, zap.NewNop())
	assert.Equal(t, domain.StartingPosition(), u.Chess())
	assert.Nil(t, u.Conn())

	var last domain.Event
	u.SubscribeEvents(func(e domain.Event) { last = e })
	assert.Equal(t, domain.EventDisconnected, last.Kind)
}

func TestHandleInitialState(t *testing.T) {
	animator := &recordingAnimator{}
	u := New(animator, zap.NewNop())
	chess := afterA2A4()

	u.Handle(encode(t, domain.InitialStateMessage{Chess: chess}))

	assert.Equal(t, chess, u.Chess())
	assert.Empty(t, animator.started)
}

func TestHandleUpdateStartsAnimation(t *testing.T) {
	animator := &recordingAnimator{}
	u := New(animator, zap.NewNop())
	var events []domain.Event
	u.SubscribeEvents(func(e domain.Event) { events = append(events, e) })

	u.Handle(encode(t, domain.UpdateMessage{Chess: afterA2A4()}))

	chess := u.Chess()
	assert.Equal(t, 1, chess.TurnNumber)
	assert.True(t, chess.Board[0][1].IsEmpty())
	assert.Equal(t, domain.NewPiece(domain.Pawn, domain.White), chess.Board[0][3].Piece)
	require.NotNil(t, chess.LatestMove)
	assert.Equal(t, "a4", chess.LatestMove.To.Label())

	assert.Equal(t, [][2]string{{"a2", "a4"}}, animator.started)
	assert.Equal(t, []domain.Kind{domain.Pawn}, animator.pieces)

	last := events[len(events)-1]
	assert.Equal(t, domain.EventUpdate, last.Kind)
	require.NotNil(t, last.Change)
	assert.Equal(t, "a2", last.Change.From.Label())
}

func TestHandleResetEndsAnimation(t *testing.T) {
	animator := &recordingAnimator{}
	u := New(animator, zap.NewNop())
	u.Handle(encode(t, domain.UpdateMessage{Chess: afterA2A4()}))

	u.Handle(encode(t, domain.ResetMessage{Chess: domain.StartingPosition()}))

	assert.Equal(t, 1, animator.ended)
	assert.Equal(t, domain.StartingPosition(), u.Chess())
}

func TestHandleInvalidKeepsPreviousState(t *testing.T) {
	logger, logs := newObserved()
	u := New(&recordingAnimator{}, logger)
	u.Handle(encode(t, domain.UpdateMessage{Chess: afterA2A4()}))
	before := u.Chess()

	var last domain.Event
	u.SubscribeEvents(func(e domain.Event) { last = e })

	u.Handle([]byte(`{"type":"update","chess":{"board":[]}}`))
	u.Handle([]byte(`not json`))

	assert.Equal(t, before, u.Chess())
	assert.Equal(t, domain.EventInvalid, last.Kind)
	var schemaErr *domain.SchemaError
	assert.ErrorAs(t, last.Err, &schemaErr)
	assert.Equal(t, 2, logs.FilterMessage("rejected inbound message").FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestHandleOtherMessageIsLoggedOnly(t *testing.T) {
	logger, logs := newObserved()
	u := New(&recordingAnimator{}, logger)
	before := u.Chess()

	u.Handle([]byte(`{"type":"chat","text":"hi"}`))
	u.Handle([]byte(`{"clients_count":2,"is_up":true}`))

	assert.Equal(t, before, u.Chess())
	entries := logs.FilterMessage("ignored message").AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "chat", entries[0].ContextMap()["type"])
	assert.Equal(t, "", entries[1].ContextMap()["type"])
}

func TestLaterSnapshotWinsEvenIfOlder(t *testing.T) {
	u := New(&recordingAnimator{}, zap.NewNop())
	newer := afterA2A4()
	newer.TurnNumber = 2
	older := afterA2A4()

	u.Handle(encode(t, domain.UpdateMessage{Chess: newer}))
	u.Handle(encode(t, domain.UpdateMessage{Chess: older}))

	assert.Equal(t, 1, u.Chess().TurnNumber)
}

func TestSendWithoutConnection(t *testing.T) {
	logger, logs := newObserved()
	u := New(&recordingAnimator{}, logger)

	assert.NotPanics(t, func() { u.Send(`{"action":"reset"}`) })

	entries := logs.FilterMessage("message not sent").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, domain.ErrChannelUnavailable.Error(), entries[0].ContextMap()["error"])
}

func TestRunAppliesFramesAndSends(t *testing.T) {
	u := New(&recordingAnimator{}, zap.NewNop())
	conn := newFakeConn()
	var (
		mu    sync.Mutex
		kinds []domain.EventKind
	)
	u.SubscribeEvents(func(e domain.Event) {
		mu.Lock()
		kinds = append(kinds, e.Kind)
		mu.Unlock()
	})

	conn.frames <- encode(t, domain.InitialStateMessage{Chess: domain.StartingPosition()})
	conn.frames <- encode(t, domain.UpdateMessage{Chess: afterA2A4()})

	done := make(chan error, 1)
	go func() { done <- u.Run(context.Background(), conn) }()

	require.Eventually(t, func() bool { return u.Chess().TurnNumber == 1 }, time.Second, 5*time.Millisecond)
	u.Send(`{"action":"reset"}`)
	conn.Close()

	require.NoError(t, <-done)
	assert.Nil(t, u.Conn())
	assert.Equal(t, []string{`{"action":"reset"}`}, conn.written)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.EventKind{
		domain.EventDisconnected,
		domain.EventConnected,
		domain.EventInitialState,
		domain.EventUpdate,
		domain.EventDisconnected,
	}, kinds)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	u := New(&recordingAnimator{}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- u.Run(ctx, newFakeConn()) }()
	require.Eventually(t, func() bool { return u.Conn() != nil }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("run did not stop")
	}
}

func TestRunOverWebSocket(t *testing.T) {
	initial := encode(t, domain.InitialStateMessage{Chess: domain.StartingPosition()})
	update := encode(t, domain.UpdateMessage{Chess: afterA2A4()})
	moves := make(chan string, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, initial)
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		moves <- string(data)
		_ = conn.WriteMessage(websocket.TextMessage, update)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), "player-1", zap.NewNop())
	require.NoError(t, err)
	defer conn.Close()

	animator := &recordingAnimator{}
	u := New(animator, zap.NewNop())
	done := make(chan error, 1)
	go func() { done <- u.Run(ctx, conn) }()

	require.Eventually(t, func() bool { return u.Conn() != nil }, time.Second, 5*time.Millisecond)
	u.Send(`{"list_of_moves":[],"new_move":["a2","a4"]}`)
	assert.JSONEq(t, `{"list_of_moves":[],"new_move":["a2","a4"]}`, <-moves)

	require.NoError(t, <-done)
	chess := u.Chess()
	assert.Equal(t, 1, chess.TurnNumber)
	assert.Equal(t, domain.NewPiece(domain.Pawn, domain.White), chess.Board[0][3].Piece)
	assert.True(t, chess.Board[0][1].IsEmpty())
	require.NotNil(t, chess.LatestMove)
	assert.Equal(t, domain.White, chess.LatestMove.Side)

	animator.mu.Lock()
	defer animator.mu.Unlock()
	assert.Equal(t, [][2]string{{"a2", "a4"}}, animator.started)
}
