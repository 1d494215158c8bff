package position

import (
	"github.com/kiryu-dev/chess-client/internal/domain"
)

type KindCounts struct {
	Pawns   int
	Knights int
	Bishops int
	Rooks   int
	Queens  int
	Kings   int
}

func (c KindCounts) Of(kind domain.Kind) int {
	switch kind {
	case domain.Pawn:
		return c.Pawns
	case domain.Knight:
		return c.Knights
	case domain.Bishop:
		return c.Bishops
	case domain.Rook:
		return c.Rooks
	case domain.Queen:
		return c.Queens
	case domain.King:
		return c.Kings
	default:
		return 0
	}
}

func (c KindCounts) Total() int {
	return c.Pawns + c.Knights + c.Bishops + c.Rooks + c.Queens + c.Kings
}

type EatenCounts struct {
	White KindCounts
	Black KindCounts
}

func CountEatenPieces(eaten domain.PiecesEaten) EatenCounts {
	return EatenCounts{
		White: countKinds(eaten.White),
		Black: countKinds(eaten.Black),
	}
}

func countKinds(pieces []domain.Piece) KindCounts {
	var c KindCounts
	for _, p := range pieces {
		switch p.Kind {
		case domain.Pawn:
			c.Pawns++
		case domain.Knight:
			c.Knights++
		case domain.Bishop:
			c.Bishops++
		case domain.Rook:
			c.Rooks++
		case domain.Queen:
			c.Queens++
		case domain.King:
			c.Kings++
		}
	}
	return c
}

func IsPawnPromotion(from domain.Square, destination string) bool {
	rank := domain.RankLabel(destination)
	return from.Piece.Kind == domain.Pawn && (rank == "8" || rank == "1")
}

var (
	NoPromotion    = domain.Aux{0, 0}
	WhitePromotion = domain.Aux{1, 0}
	BlackPromotion = domain.Aux{1, 1}
)

// sourceRank is zero-based, destination is a one-based label.
func GetPromotionPiece(sourceRank int, destination string) domain.Aux {
	rank := domain.RankLabel(destination)
	switch {
	case sourceRank == 6 && rank == "8":
		return WhitePromotion
	case sourceRank == 1 && rank == "1":
		return BlackPromotion
	default:
		return NoPromotion
	}
}
