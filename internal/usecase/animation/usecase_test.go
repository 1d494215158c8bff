package animation

import (
	"testing"
	"time"

	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gridLayout struct{}

func (gridLayout) SquarePosition(square string) (domain.Point, bool) {
	c, err := domain.ParseLabel(square)
	if err != nil {
		return domain.Point{}, false
	}
	return domain.Point{X: float64(c.File) * 64, Y: float64(7-c.Rank) * 64}, true
}

const testDuration = 30 * time.Millisecond

func TestStartAnimationComputesPositionsAndSettles(t *testing.T) {
	u := New(gridLayout{}, testDuration, zap.NewNop())

	u.StartAnimation("e2", "e4", domain.Pawn)

	state := u.State()
	require.True(t, state.IsAnimating)
	assert.Equal(t, "e2", state.FromSquare)
	assert.Equal(t, "e4", state.ToSquare)
	assert.Equal(t, domain.Pawn, state.Piece)
	assert.Equal(t, domain.Point{X: 256, Y: 384}, state.Start)
	assert.Equal(t, domain.Point{X: 256, Y: 256}, state.End)

	require.Eventually(t, func() bool {
		return !u.State().IsAnimating
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "e2", u.State().FromSquare)
}

func TestNewerAnimationSupersedesStaleTimer(t *testing.T) {
	u := New(nil, testDuration, zap.NewNop())

	u.StartAnimation("e2", "e4", domain.Pawn)
	first := u.State().ID
	u.StartAnimation("g8", "f6", domain.Knight)
	second := u.State().ID
	require.Greater(t, second, first)

	// a late expiry of the first animation must be a no-op
	u.expire(first, "e2", "e4")
	state := u.State()
	assert.True(t, state.IsAnimating)
	assert.Equal(t, "g8", state.FromSquare)

	require.Eventually(t, func() bool {
		return !u.State().IsAnimating
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "f6", u.State().ToSquare)
}

func TestSupersedingStopsPreviousTimer(t *testing.T) {
	u := New(nil, time.Hour, zap.NewNop())

	u.StartAnimation("a2", "a3", domain.Pawn)
	previous := u.timer
	u.StartAnimation("b2", "b3", domain.Pawn)

	assert.NotSame(t, previous, u.timer)
	assert.False(t, previous.Stop(), "superseded timer should already be stopped")
	u.EndAnimation()
	assert.Nil(t, u.timer)
}

func TestEndAnimationResetsImmediately(t *testing.T) {
	u := New(nil, time.Hour, zap.NewNop())
	u.StartAnimation("d1", "h5", domain.Queen)

	u.EndAnimation()

	assert.Equal(t, domain.AnimationState{}, u.State())
}

func TestShakeMarksInvalidAttempt(t *testing.T) {
	u := New(nil, testDuration, zap.NewNop())

	u.Shake("e5")

	state := u.State()
	assert.True(t, state.Invalid)
	assert.True(t, state.IsAnimating)
	assert.Equal(t, "e5", state.FromSquare)
}

func TestSubscribersSeeStartAndSettle(t *testing.T) {
	u := New(nil, testDuration, zap.NewNop())
	states := make(chan domain.AnimationState, 8)
	unsubscribe := u.Subscribe(func(s domain.AnimationState) { states <- s })
	defer unsubscribe()
	<-states

	u.StartAnimation("c2", "c4", domain.Pawn)

	assert.True(t, (<-states).IsAnimating)
	select {
	case s := <-states:
		assert.False(t, s.IsAnimating)
	case <-time.After(time.Second):
		t.Fatal("animation did not settle")
	}
}
