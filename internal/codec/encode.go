package codec

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/pkg/errors"
)

func EncodeChess(chess domain.Chess) ([]byte, error) {
	w, err := toWireChess(chess)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, errors.WithMessage(err, "marshal chess")
	}
	return data, nil
}

func EncodeMessage(msg domain.Message) ([]byte, error) {
	fields := make(map[string]jsoniter.RawMessage)
	switch m := msg.(type) {
	case domain.InitialStateMessage:
		if err := putChess(fields, m.Chess); err != nil {
			return nil, err
		}
	case domain.UpdateMessage:
		if err := putChess(fields, m.Chess); err != nil {
			return nil, err
		}
	case domain.ResetMessage:
		if err := putChess(fields, m.Chess); err != nil {
			return nil, err
		}
	case domain.OtherMessage:
		for k, v := range m.Fields {
			fields[k] = v
		}
	default:
		return nil, errors.Errorf("unsupported message %T", msg)
	}
	if msgType := msg.MessageType(); msgType != "" {
		raw, err := json.Marshal(msgType)
		if err != nil {
			return nil, errors.WithMessage(err, "marshal message type")
		}
		fields["type"] = raw
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.WithMessage(err, "marshal message")
	}
	return data, nil
}

func putChess(fields map[string]jsoniter.RawMessage, chess domain.Chess) error {
	data, err := EncodeChess(chess)
	if err != nil {
		return err
	}
	fields["chess"] = data
	return nil
}

func EncodeMoveRequest(req domain.MoveRequest) ([]byte, error) {
	w := wireMoveRequest{
		ListOfMoves: make([][]jsoniter.RawMessage, 0, len(req.ListOfMoves)),
		NewMove:     req.NewMove,
	}
	for _, record := range req.ListOfMoves {
		move, err := toWireMoveRecord(record)
		if err != nil {
			return nil, err
		}
		w.ListOfMoves = append(w.ListOfMoves, move)
	}
	if req.Promotion != nil {
		promotion := [2]int(*req.Promotion)
		w.Promotion = &promotion
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, errors.WithMessage(err, "marshal move request")
	}
	return data, nil
}

func EncodeResetRequest() ([]byte, error) {
	data, err := json.Marshal(wireResetRequest{Action: domain.ResetAction})
	if err != nil {
		return nil, errors.WithMessage(err, "marshal reset request")
	}
	return data, nil
}

func toWireChess(chess domain.Chess) (wireChess, error) {
	turn, fifty := chess.TurnNumber, chess.FiftyMoveRule
	w := wireChess{
		Board:         make([][]wireSquare, domain.BoardSize),
		TurnNumber:    &turn,
		GameState:     chess.GameState.String(),
		FiftyMoveRule: &fifty,
		ListOfMoves:   make([][]jsoniter.RawMessage, 0, len(chess.ListOfMoves)),
	}
	for file := range chess.Board {
		w.Board[file] = make([]wireSquare, domain.BoardSize)
		for rank := range chess.Board[file] {
			sq, err := toWireSquare(chess.Board[file][rank])
			if err != nil {
				return wireChess{}, err
			}
			w.Board[file][rank] = sq
		}
	}
	if chess.LatestMove != nil {
		latest, err := toWireLatestMove(*chess.LatestMove)
		if err != nil {
			return wireChess{}, err
		}
		w.LatestMove = latest
	}
	for _, p := range chess.Players {
		inCheck, victory := p.InCheck, p.Victory
		kingside, queenside := p.Castling.Kingside, p.Castling.Queenside
		w.Players = append(w.Players, wirePlayer{
			Color:    p.Color.String(),
			InCheck:  &inCheck,
			Victory:  &victory,
			Castling: &wireCastling{Kingside: &kingside, Queenside: &queenside},
		})
	}
	for _, record := range chess.ListOfMoves {
		move, err := toWireMoveRecord(record)
		if err != nil {
			return wireChess{}, err
		}
		w.ListOfMoves = append(w.ListOfMoves, move)
	}
	white, err := toWirePieces(chess.PiecesEaten.White)
	if err != nil {
		return wireChess{}, err
	}
	black, err := toWirePieces(chess.PiecesEaten.Black)
	if err != nil {
		return wireChess{}, err
	}
	w.PiecesEaten = &wirePiecesEaten{White: white, Black: black}
	return w, nil
}

func toWireSquare(sq domain.Square) (wireSquare, error) {
	piece, err := toWirePiece(sq.Piece)
	if err != nil {
		return wireSquare{}, err
	}
	rank := sq.Rank
	w := wireSquare{
		File:          domain.FileLetter(sq.File),
		Rank:          &rank,
		Color:         sq.Color.String(),
		Piece:         piece,
		PossibleMoves: make([][][2]int, 0, len(sq.PossibleMoves)),
	}
	for _, move := range sq.PossibleMoves {
		pairs := [][2]int{
			{move.From.File, move.From.Rank},
			{move.To.File, move.To.Rank},
		}
		if move.Aux != nil {
			pairs = append(pairs, [2]int(*move.Aux))
		}
		w.PossibleMoves = append(w.PossibleMoves, pairs)
	}
	return w, nil
}

func toWirePiece(p domain.Piece) (jsoniter.RawMessage, error) {
	var v any = p.String()
	if !p.IsNone() {
		v = map[string]string{p.Kind.String(): p.Side.String()}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithMessage(err, "marshal piece")
	}
	return data, nil
}

func toWirePieces(pieces []domain.Piece) ([]jsoniter.RawMessage, error) {
	result := make([]jsoniter.RawMessage, 0, len(pieces))
	for _, p := range pieces {
		raw, err := toWirePiece(p)
		if err != nil {
			return nil, err
		}
		result = append(result, raw)
	}
	return result, nil
}

func toWireLatestMove(latest domain.LatestMove) ([]jsoniter.RawMessage, error) {
	result := make([]jsoniter.RawMessage, 0, 3)
	for _, sq := range []domain.Square{latest.From, latest.To} {
		w, err := toWireSquare(sq)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(w)
		if err != nil {
			return nil, errors.WithMessage(err, "marshal latest move square")
		}
		result = append(result, raw)
	}
	if latest.Side != domain.NoColor {
		raw, err := json.Marshal(latest.Side.String())
		if err != nil {
			return nil, errors.WithMessage(err, "marshal latest move side")
		}
		result = append(result, raw)
	}
	return result, nil
}

func toWireMoveRecord(record domain.MoveRecord) ([]jsoniter.RawMessage, error) {
	pairs := []any{
		[2]any{domain.FileLetter(record.From.File), record.From.Rank + 1},
		[2]any{domain.FileLetter(record.To.File), record.To.Rank + 1},
	}
	if record.Aux != nil {
		pairs = append(pairs, [2]int(*record.Aux))
	}
	result := make([]jsoniter.RawMessage, 0, len(pairs))
	for _, pair := range pairs {
		raw, err := json.Marshal(pair)
		if err != nil {
			return nil, errors.WithMessage(err, "marshal move record")
		}
		result = append(result, raw)
	}
	return result, nil
}
