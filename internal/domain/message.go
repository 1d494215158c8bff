package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed   = errors.New("connection closed")
	ErrChannelUnavailable = errors.New("websocket is not open")
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrIllegalMove        = errors.New("illegal move attempt")
	ErrInvalidSquare      = errors.New("invalid square")
)

type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema validation failed at '" + e.Path + "': " + e.Reason
}

const ClientUuidHeader = "X-Client-Key"

const (
	InitialStateType = "initial_state"
	UpdateType       = "update"
	ResetType        = "reset"
)

type Message interface {
	MessageType() string
	isMessage()
}

type InitialStateMessage struct {
	Chess Chess
}

type UpdateMessage struct {
	Chess Chess
}

type ResetMessage struct {
	Chess Chess
}

type OtherMessage struct {
	Type   string
	Fields map[string][]byte
}

func (InitialStateMessage) MessageType() string { return InitialStateType }
func (UpdateMessage) MessageType() string       { return UpdateType }
func (ResetMessage) MessageType() string        { return ResetType }
func (m OtherMessage) MessageType() string      { return m.Type }

func (InitialStateMessage) isMessage() {}
func (UpdateMessage) isMessage()       {}
func (ResetMessage) isMessage()        {}
func (OtherMessage) isMessage()        {}

type MoveRequest struct {
	ListOfMoves []MoveRecord
	NewMove     [2]string
	Promotion   *Aux
}

const ResetAction = "reset"

type ResetRequest struct {
	Action string
}
