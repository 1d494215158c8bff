package domain

type Color byte

const (
	NoColor = Color(iota)
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func ParseColor(s string) (Color, bool) {
	switch s {
	case "White":
		return White, true
	case "Black":
		return Black, true
	default:
		return NoColor, false
	}
}

type Kind byte

const (
	NoKind = Kind(iota)
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var Kinds = [...]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

var kindNames = map[Kind]string{
	NoKind: "None",
	Pawn:   "Pawn",
	Knight: "Knight",
	Bishop: "Bishop",
	Rook:   "Rook",
	Queen:  "Queen",
	King:   "King",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if k != NoKind && name == s {
			return k, true
		}
	}
	return NoKind, false
}

type Piece struct {
	Kind Kind
	Side Color
}

var NoPiece = Piece{}

func NewPiece(kind Kind, side Color) Piece {
	return Piece{Kind: kind, Side: side}
}

func (p Piece) IsNone() bool {
	return p.Kind == NoKind
}

func (p Piece) String() string {
	if p.IsNone() {
		return "None"
	}
	return p.Side.String() + " " + p.Kind.String()
}

var symbols = map[Kind]byte{
	Pawn:   'p',
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
	King:   'k',
}

func (p Piece) Symbol() byte {
	s, ok := symbols[p.Kind]
	if !ok {
		return '.'
	}
	if p.Side == White {
		return s - 'a' + 'A'
	}
	return s
}
