package codec

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type wireSquare struct {
	File          string              `json:"file" validate:"oneof=A B C D E F G H"`
	Rank          *int                `json:"rank" validate:"required,min=0,max=7"`
	Color         string              `json:"color" validate:"oneof=White Black"`
	Piece         jsoniter.RawMessage `json:"piece"`
	PossibleMoves [][][2]int          `json:"possible_moves" validate:"required,dive,min=2,max=3"`
}

type wireCastling struct {
	Kingside  *bool `json:"kingside" validate:"required"`
	Queenside *bool `json:"queenside" validate:"required"`
}

type wirePlayer struct {
	Color    string        `json:"color" validate:"oneof=White Black"`
	InCheck  *bool         `json:"in_check" validate:"required"`
	Victory  *bool         `json:"victory" validate:"required"`
	Castling *wireCastling `json:"castling" validate:"required"`
}

type wirePiecesEaten struct {
	White []jsoniter.RawMessage `json:"white" validate:"required"`
	Black []jsoniter.RawMessage `json:"black" validate:"required"`
}

type wireChess struct {
	Board         [][]wireSquare          `json:"board" validate:"len=8,dive,len=8,dive"`
	TurnNumber    *int                    `json:"turn_number" validate:"required,min=0"`
	LatestMove    []jsoniter.RawMessage   `json:"latest_move"`
	Players       []wirePlayer            `json:"players" validate:"len=2,dive"`
	GameState     string                  `json:"gamestate" validate:"oneof=InProgress WhiteVictory BlackVictory Draw"`
	FiftyMoveRule *int                    `json:"fifty_move_rule" validate:"required,min=0"`
	ListOfMoves   [][]jsoniter.RawMessage `json:"list_of_moves" validate:"required,dive,min=2,max=3"`
	PiecesEaten   *wirePiecesEaten        `json:"pieces_eaten" validate:"required"`
}

type wireMoveRequest struct {
	ListOfMoves [][]jsoniter.RawMessage `json:"list_of_moves"`
	NewMove     [2]string               `json:"new_move"`
	Promotion   *[2]int                 `json:"promotion,omitempty"`
}

type wireResetRequest struct {
	Action string `json:"action"`
}
