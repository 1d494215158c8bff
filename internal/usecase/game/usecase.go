package game

import (
	"github.com/kiryu-dev/chess-client/internal/codec"
	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/kiryu-dev/chess-client/internal/position"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	state  domain.ChessReader
	sender domain.Sender
	logger *zap.Logger
}

func New(state domain.ChessReader, sender domain.Sender, logger *zap.Logger) useCase {
	return useCase{
		state:  state,
		sender: sender,
		logger: logger,
	}
}

func (u useCase) MovePiece(from, to string) error {
	chess := u.state.Chess()
	fromSq, toSq, err := validateMove(chess, from, to)
	if err != nil {
		u.logger.Info("move rejected", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return err
	}
	req := domain.MoveRequest{
		ListOfMoves: chess.ListOfMoves,
		NewMove:     [2]string{fromSq.Label(), toSq.Label()},
	}
	if position.IsPawnPromotion(fromSq, to) {
		hint := position.GetPromotionPiece(fromSq.Rank, to)
		req.Promotion = &hint
	}
	data, err := codec.EncodeMoveRequest(req)
	if err != nil {
		return errors.WithMessage(err, "encode move request")
	}
	u.sender.Send(string(data))
	return nil
}

func (u useCase) Reset() error {
	data, err := codec.EncodeResetRequest()
	if err != nil {
		return errors.WithMessage(err, "encode reset request")
	}
	u.sender.Send(string(data))
	return nil
}

func (u useCase) Preview(from, to string) (domain.Chess, error) {
	chess := u.state.Chess()
	fromSq, toSq, err := validateMove(chess, from, to)
	if err != nil {
		return domain.Chess{}, err
	}
	preview := chess
	for file := range preview.Board {
		for rank := range preview.Board[file] {
			preview.Board[file][rank].PossibleMoves = nil
		}
	}
	moving := fromSq.Piece
	preview.Board[fromSq.File][fromSq.Rank].Piece = domain.NoPiece
	preview.Board[toSq.File][toSq.Rank].Piece = moving
	preview.TurnNumber++
	preview.LatestMove = &domain.LatestMove{From: fromSq, To: toSq, Side: moving.Side}
	preview.ListOfMoves = append(append([]domain.MoveRecord(nil), chess.ListOfMoves...),
		domain.MoveRecord{From: fromSq.Coord, To: toSq.Coord})
	return preview, nil
}

func (u useCase) Destinations(from string) []string {
	chess := u.state.Chess()
	sq, err := chess.Board.SquareByLabel(from)
	if err != nil || !position.IsPossibleToMovePiece(sq, position.IsWhiteTurn(chess.TurnNumber)) {
		return nil
	}
	var labels []string
	for _, c := range position.LegalDestinations(sq) {
		labels = append(labels, c.Label())
	}
	return labels
}

func validateMove(chess domain.Chess, from, to string) (domain.Square, domain.Square, error) {
	fromSq, err := chess.Board.SquareByLabel(from)
	if err != nil {
		return domain.Square{}, domain.Square{}, errors.WithMessage(domain.ErrIllegalMove, err.Error())
	}
	dest, ok := position.DestinationOfLabel(to)
	if !ok {
		return domain.Square{}, domain.Square{}, errors.WithMessagef(domain.ErrIllegalMove, "destination '%s'", to)
	}
	toSq := chess.Board.At(dest)
	if !position.IsPossibleToMovePiece(fromSq, position.IsWhiteTurn(chess.TurnNumber)) {
		return domain.Square{}, domain.Square{}, errors.WithMessagef(domain.ErrIllegalMove,
			"no %s piece on %s", chess.SideToMove(), fromSq.Label())
	}
	if !position.IsMoveLegal(fromSq, toSq) {
		return domain.Square{}, domain.Square{}, errors.WithMessagef(domain.ErrIllegalMove,
			"%s cannot reach %s", fromSq.Label(), toSq.Label())
	}
	return fromSq, toSq, nil
}
