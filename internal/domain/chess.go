package domain

type GameState byte

const (
	InProgress = GameState(iota)
	WhiteVictory
	BlackVictory
	Draw
)

var gameStateNames = map[GameState]string{
	InProgress:   "InProgress",
	WhiteVictory: "WhiteVictory",
	BlackVictory: "BlackVictory",
	Draw:         "Draw",
}

func (s GameState) String() string {
	return gameStateNames[s]
}

func (s GameState) IsTerminal() bool {
	return s != InProgress
}

func ParseGameState(s string) (GameState, bool) {
	for state, name := range gameStateNames {
		if name == s {
			return state, true
		}
	}
	return InProgress, false
}

type Castling struct {
	Kingside  bool
	Queenside bool
}

type Player struct {
	Color    Color
	InCheck  bool
	Victory  bool
	Castling Castling
}

func NewPlayer(color Color) Player {
	return Player{
		Color:    color,
		Castling: Castling{Kingside: true, Queenside: true},
	}
}

type MoveRecord struct {
	From Coord
	To   Coord
	Aux  *Aux
}

type LatestMove struct {
	From Square
	To   Square
	Side Color
}

type PiecesEaten struct {
	White []Piece
	Black []Piece
}

func (p PiecesEaten) Len() int {
	return len(p.White) + len(p.Black)
}

type Chess struct {
	Board         Board
	TurnNumber    int
	LatestMove    *LatestMove
	Players       [2]Player
	GameState     GameState
	FiftyMoveRule int
	ListOfMoves   []MoveRecord
	PiecesEaten   PiecesEaten
}

func (c Chess) Player(color Color) Player {
	if color == Black {
		return c.Players[1]
	}
	return c.Players[0]
}

func (c Chess) SideToMove() Color {
	if c.TurnNumber%2 == 0 {
		return White
	}
	return Black
}

type Change struct {
	From     Coord
	To       Coord
	Moving   Piece
	Captured Piece
	Promoted Piece
}

func (c Change) IsCapture() bool {
	return !c.Captured.IsNone()
}

func (c Change) IsPromotion() bool {
	return !c.Promoted.IsNone()
}
