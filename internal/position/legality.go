package position

import (
	"github.com/kiryu-dev/chess-client/internal/domain"
)

func IsWhiteTurn(turnNumber int) bool {
	return turnNumber%2 == 0
}

func Destination(sq domain.Square) (domain.Coord, bool) {
	c := sq.Coord
	return c, c.Valid()
}

func DestinationOfLabel(label string) (domain.Coord, bool) {
	c, err := domain.ParseLabel(label)
	if err != nil {
		return domain.Coord{}, false
	}
	return c, true
}

func IsMoveLegal(from, to domain.Square) bool {
	dest, ok := Destination(to)
	if !ok {
		return false
	}
	return InPossibleMoves(from.PossibleMoves, dest)
}

func InPossibleMoves(moves []domain.CandidateMove, dest domain.Coord) bool {
	for _, move := range moves {
		if move.To == dest {
			return true
		}
	}
	return false
}

func IsPossibleToMovePiece(from domain.Square, whiteTurn bool) bool {
	if from.IsEmpty() {
		return false
	}
	side := domain.Black
	if whiteTurn {
		side = domain.White
	}
	return from.Piece.Side == side
}

func LegalDestinations(from domain.Square) []domain.Coord {
	result := make([]domain.Coord, 0, len(from.PossibleMoves))
	for _, move := range from.PossibleMoves {
		result = append(result, move.To)
	}
	return result
}
