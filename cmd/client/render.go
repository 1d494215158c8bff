package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/kiryu-dev/chess-client/internal/position"
)

type renderer struct {
	out io.Writer
	mu  sync.Mutex
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{out: out}
}

func (r *renderer) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *renderer) help() {
	r.printf("commands: <from> <to> (e.g. e2 e4), moves <square>, reset, help, quit\n")
}

// Rank 8 on top: row r, column c is display[7-c][r].
func (r *renderer) drawChess(chess domain.Chess) {
	display := position.ToDisplayOrientation(chess.Board)
	var b strings.Builder
	b.WriteString("\033[H\033[J")
	for row := 0; row < domain.BoardSize; row++ {
		sq := display[domain.BoardSize-1][row]
		fmt.Fprintf(&b, "%s ", domain.RankLabel(sq.Label()))
		for col := 0; col < domain.BoardSize; col++ {
			sq = display[domain.BoardSize-1-col][row]
			b.WriteByte(sq.Piece.Symbol())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteString("  a b c d e f g h\n")

	if chess.PiecesEaten.Len() > 0 {
		eaten := position.CountEatenPieces(chess.PiecesEaten)
		fmt.Fprintf(&b, "captured white: %s\n", kindSummary(eaten.White))
		fmt.Fprintf(&b, "captured black: %s\n", kindSummary(eaten.Black))
	}
	if chess.LatestMove != nil {
		fmt.Fprintf(&b, "last move: %s %s-%s\n",
			chess.LatestMove.Side, chess.LatestMove.From.Label(), chess.LatestMove.To.Label())
	}
	if chess.GameState.IsTerminal() {
		fmt.Fprintf(&b, "game over: %s\n", chess.GameState)
	} else {
		player := chess.Player(chess.SideToMove())
		fmt.Fprintf(&b, "turn %d, %s to move", chess.TurnNumber, player.Color)
		if player.InCheck {
			b.WriteString(" (check)")
		}
		b.WriteByte('\n')
	}
	r.printf("%s", b.String())
}

func kindSummary(counts position.KindCounts) string {
	if counts.Total() == 0 {
		return "-"
	}
	var parts []string
	for _, kind := range domain.Kinds {
		if n := counts.Of(kind); n > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", kind, n))
		}
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) drawEvent(event domain.Event) {
	switch event.Kind {
	case domain.EventInvalid:
		r.printf("server sent an invalid snapshot: %v\n", event.Err)
	case domain.EventConnected:
		r.printf("connected\n")
	case domain.EventDisconnected:
		r.printf("disconnected\n")
	}
}

func (r *renderer) drawAnimation(state domain.AnimationState) {
	if !state.IsAnimating {
		return
	}
	if state.Invalid {
		r.printf("illegal move from %s\n", state.FromSquare)
		return
	}
	r.printf("%s %s -> %s\n", state.Piece, state.FromSquare, state.ToSquare)
}

func (r *renderer) drawHealth(healthy bool) {
	if healthy {
		r.printf("backend is reachable\n")
		return
	}
	r.printf("backend unavailable\n")
}
