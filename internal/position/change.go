package position

import (
	"github.com/kiryu-dev/chess-client/internal/domain"
)

func DetectChange(prev, next domain.Chess) (domain.Change, bool) {
	from, to, ok := movedSquares(prev, next)
	if !ok {
		return domain.Change{}, false
	}
	change := domain.Change{
		From:   from,
		To:     to,
		Moving: prev.Board.At(from).Piece,
	}
	if change.Moving.IsNone() {
		return domain.Change{}, false
	}
	change.Captured = capturedPiece(prev.PiecesEaten, next.PiecesEaten)
	if target := prev.Board.At(to).Piece; change.Captured.IsNone() && target.Side == change.Moving.Side.Opposite() {
		change.Captured = target
	}
	if landed := next.Board.At(to).Piece; change.Moving.Kind == domain.Pawn && !landed.IsNone() && landed.Kind != domain.Pawn {
		change.Promoted = landed
	}
	return change, true
}

func movedSquares(prev, next domain.Chess) (domain.Coord, domain.Coord, bool) {
	if n := len(next.ListOfMoves); n > len(prev.ListOfMoves) {
		last := next.ListOfMoves[n-1]
		return last.From, last.To, true
	}
	if next.LatestMove != nil && (prev.LatestMove == nil || !sameLatestMove(*prev.LatestMove, *next.LatestMove)) {
		return next.LatestMove.From.Coord, next.LatestMove.To.Coord, true
	}
	return diffBoards(&prev.Board, &next.Board)
}

func sameLatestMove(a, b domain.LatestMove) bool {
	return a.From.Coord == b.From.Coord && a.To.Coord == b.To.Coord && a.Side == b.Side
}

func diffBoards(prev, next *domain.Board) (domain.Coord, domain.Coord, bool) {
	var vacated, arrived []domain.Square
	for file := range next {
		for rank := range next[file] {
			before, after := prev[file][rank].Piece, next[file][rank].Piece
			switch {
			case !before.IsNone() && after.IsNone():
				vacated = append(vacated, prev[file][rank])
			case !after.IsNone() && after != before:
				arrived = append(arrived, next[file][rank])
			}
		}
	}
	if len(arrived) == 0 || len(vacated) == 0 {
		return domain.Coord{}, domain.Coord{}, false
	}
	to := arrived[0]
	for _, sq := range arrived {
		if sq.Piece.Kind == domain.King {
			to = sq
			break
		}
	}
	var fallback *domain.Square
	for i, sq := range vacated {
		if sq.Piece.Side != to.Piece.Side {
			continue
		}
		if sq.Piece.Kind == to.Piece.Kind {
			return sq.Coord, to.Coord, true
		}
		if fallback == nil || sq.Piece.Kind == domain.Pawn {
			fallback = &vacated[i]
		}
	}
	if fallback == nil {
		return domain.Coord{}, domain.Coord{}, false
	}
	return fallback.Coord, to.Coord, true
}

func capturedPiece(prev, next domain.PiecesEaten) domain.Piece {
	switch {
	case len(next.White) > len(prev.White):
		return next.White[len(next.White)-1]
	case len(next.Black) > len(prev.Black):
		return next.Black[len(next.Black)-1]
	default:
		return domain.NoPiece
	}
}
