package domain

type SquareColor byte

const (
	LightSquare = SquareColor(iota)
	DarkSquare
)

func (c SquareColor) String() string {
	if c == DarkSquare {
		return "Black"
	}
	return "White"
}

func ParseSquareColor(s string) (SquareColor, bool) {
	switch s {
	case "White":
		return LightSquare, true
	case "Black":
		return DarkSquare, true
	default:
		return LightSquare, false
	}
}

func SquareColorAt(c Coord) SquareColor {
	if (c.File+c.Rank)%2 == 0 {
		return DarkSquare
	}
	return LightSquare
}

type Aux [2]int

// From always equals the owning square's coordinates.
type CandidateMove struct {
	From Coord
	To   Coord
	Aux  *Aux
}

type Square struct {
	Coord
	Color         SquareColor
	Piece         Piece
	PossibleMoves []CandidateMove
}

func (s Square) Label() string {
	return s.Coord.Label()
}

func (s Square) IsEmpty() bool {
	return s.Piece.IsNone()
}

// Board is indexed [file][rank].
type Board [BoardSize][BoardSize]Square

func (b *Board) At(c Coord) Square {
	return b[c.File][c.Rank]
}

func (b *Board) SquareByLabel(label string) (Square, error) {
	c, err := ParseLabel(label)
	if err != nil {
		return Square{}, err
	}
	return b.At(c), nil
}

func EmptyBoard() Board {
	var b Board
	for file := range b {
		for rank := range b[file] {
			c := Coord{File: file, Rank: rank}
			b[file][rank] = Square{Coord: c, Color: SquareColorAt(c)}
		}
	}
	return b
}
