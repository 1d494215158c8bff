package domain

import (
	"context"
	"time"
)

type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close()
}

type Sender interface {
	Send(message string)
}

type ChessReader interface {
	Chess() Chess
}

type Point struct {
	X float64
	Y float64
}

type Layout interface {
	SquarePosition(square string) (Point, bool)
}

type AnimationState struct {
	ID          uint64
	FromSquare  string
	ToSquare    string
	Piece       Kind
	Invalid     bool
	IsAnimating bool
	Start       Point
	End         Point
}

type Animator interface {
	StartAnimation(from, to string, piece Kind)
	EndAnimation()
}

type StatusResponse struct {
	ClientsCount int       `json:"clients_count"`
	DateTime     time.Time `json:"dateTime"`
	IsUp         bool      `json:"is_up"`
}

type StatusRepository interface {
	Status(ctx context.Context, addr string) (*StatusResponse, error)
}
