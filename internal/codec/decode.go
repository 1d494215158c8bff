package codec

import (
	"bytes"
	"fmt"
	"math"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/pkg/errors"
)

const chessPath = "chess"

func DecodeMessage(data []byte) (domain.Message, error) {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, schemaErrorf("$", "message must be a JSON object")
	}
	var msgType string
	if raw, ok := fields["type"]; ok {
		if err := json.Unmarshal(raw, &msgType); err != nil {
			return nil, schemaErrorf("type", "must be a string")
		}
	}
	switch msgType {
	case domain.InitialStateType, domain.UpdateType, domain.ResetType:
	default:
		other := domain.OtherMessage{Type: msgType, Fields: make(map[string][]byte, len(fields))}
		for k, v := range fields {
			other.Fields[k] = []byte(v)
		}
		return other, nil
	}
	raw, ok := fields["chess"]
	if !ok || isNull(raw) {
		return nil, schemaErrorf(chessPath, "value is required")
	}
	chess, err := parseChess(chessPath, raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "decode '%s' message", msgType)
	}
	switch msgType {
	case domain.InitialStateType:
		return domain.InitialStateMessage{Chess: chess}, nil
	case domain.UpdateType:
		return domain.UpdateMessage{Chess: chess}, nil
	default:
		return domain.ResetMessage{Chess: chess}, nil
	}
}

func ParseChess(data []byte) (domain.Chess, error) {
	return parseChess("", data)
}

func parseChess(prefix string, data []byte) (domain.Chess, error) {
	var w wireChess
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Chess{}, decodeError(prefix, data, reflect.TypeOf(w), err)
	}
	if err := validateStruct(prefix, w); err != nil {
		return domain.Chess{}, err
	}
	chess := domain.Chess{
		TurnNumber:    *w.TurnNumber,
		FiftyMoveRule: *w.FiftyMoveRule,
	}
	chess.GameState, _ = domain.ParseGameState(w.GameState)
	for file := range w.Board {
		for rank := range w.Board[file] {
			path := joinPath(prefix, fmt.Sprintf("board[%d][%d]", file, rank))
			sq, err := parseSquare(path, w.Board[file][rank])
			if err != nil {
				return domain.Chess{}, err
			}
			if sq.File != file {
				return domain.Chess{}, schemaErrorf(path+".file", "square stored at file index %d", file)
			}
			if sq.Rank != rank {
				return domain.Chess{}, schemaErrorf(path+".rank", "square stored at rank index %d", rank)
			}
			chess.Board[file][rank] = sq
		}
	}
	latest, err := parseLatestMove(joinPath(prefix, "latest_move"), w.LatestMove)
	if err != nil {
		return domain.Chess{}, err
	}
	chess.LatestMove = latest
	if chess.Players, err = parsePlayers(joinPath(prefix, "players"), w.Players, chess.GameState); err != nil {
		return domain.Chess{}, err
	}
	for i, move := range w.ListOfMoves {
		record, err := parseMoveRecord(joinPath(prefix, fmt.Sprintf("list_of_moves[%d]", i)), move)
		if err != nil {
			return domain.Chess{}, err
		}
		chess.ListOfMoves = append(chess.ListOfMoves, record)
	}
	eatenPath := joinPath(prefix, "pieces_eaten")
	if chess.PiecesEaten.White, err = parseEaten(eatenPath+".white", w.PiecesEaten.White); err != nil {
		return domain.Chess{}, err
	}
	if chess.PiecesEaten.Black, err = parseEaten(eatenPath+".black", w.PiecesEaten.Black); err != nil {
		return domain.Chess{}, err
	}
	return chess, nil
}

func parseSquare(path string, w wireSquare) (domain.Square, error) {
	file, _ := domain.FileIndex(w.File)
	coord := domain.Coord{File: file, Rank: *w.Rank}
	color, _ := domain.ParseSquareColor(w.Color)
	piece, err := parsePiece(path+".piece", w.Piece)
	if err != nil {
		return domain.Square{}, err
	}
	sq := domain.Square{Coord: coord, Color: color, Piece: piece}
	for i, move := range w.PossibleMoves {
		movePath := fmt.Sprintf("%s.possible_moves[%d]", path, i)
		candidate := domain.CandidateMove{
			From: domain.Coord{File: move[0][0], Rank: move[0][1]},
			To:   domain.Coord{File: move[1][0], Rank: move[1][1]},
		}
		if candidate.From != coord {
			return domain.Square{}, schemaErrorf(movePath+"[0]", "must reference the square itself")
		}
		if !candidate.To.Valid() {
			return domain.Square{}, schemaErrorf(movePath+"[1]", "destination off the board")
		}
		if len(move) == 3 {
			aux := domain.Aux(move[2])
			candidate.Aux = &aux
		}
		sq.PossibleMoves = append(sq.PossibleMoves, candidate)
	}
	return sq, nil
}

func parsePiece(path string, raw jsoniter.RawMessage) (domain.Piece, error) {
	if len(raw) == 0 || isNull(raw) {
		return domain.NoPiece, schemaErrorf(path, "value is required")
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if name == domain.NoPiece.String() {
			return domain.NoPiece, nil
		}
		return domain.NoPiece, schemaErrorf(path, "string piece must be \"None\"")
	}
	var variant map[string]string
	if err := json.Unmarshal(raw, &variant); err != nil {
		return domain.NoPiece, schemaErrorf(path, "must be \"None\" or a single-kind object")
	}
	if len(variant) != 1 {
		return domain.NoPiece, schemaErrorf(path, "exactly one kind must be set, got %d", len(variant))
	}
	for key, side := range variant {
		if key == domain.NoPiece.String() {
			if side != domain.NoPiece.String() {
				return domain.NoPiece, schemaErrorf(path+"."+key, "must be \"None\"")
			}
			return domain.NoPiece, nil
		}
		kind, ok := domain.ParseKind(key)
		if !ok {
			return domain.NoPiece, schemaErrorf(path+"."+key, "unknown piece kind")
		}
		color, ok := domain.ParseColor(side)
		if !ok {
			return domain.NoPiece, schemaErrorf(path+"."+key, "must be one of [White Black]")
		}
		return domain.NewPiece(kind, color), nil
	}
	return domain.NoPiece, nil
}

func parseLatestMove(path string, items []jsoniter.RawMessage) (*domain.LatestMove, error) {
	if items == nil {
		return nil, nil
	}
	var (
		squares []domain.Square
		side    = domain.NoColor
	)
	for i, raw := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		trimmed := bytes.TrimSpace(raw)
		switch {
		case len(trimmed) > 0 && trimmed[0] == '{':
			var w wireSquare
			if err := json.Unmarshal(trimmed, &w); err != nil {
				return nil, decodeError(itemPath, trimmed, reflect.TypeOf(w), err)
			}
			if err := validateStruct(itemPath, w); err != nil {
				return nil, err
			}
			sq, err := parseSquare(itemPath, w)
			if err != nil {
				return nil, err
			}
			squares = append(squares, sq)
		case len(trimmed) > 0 && trimmed[0] == '"':
			var s string
			_ = json.Unmarshal(trimmed, &s)
			color, ok := domain.ParseColor(s)
			if !ok {
				return nil, schemaErrorf(itemPath, "must be one of [White Black]")
			}
			side = color
		default:
			return nil, schemaErrorf(itemPath, "must be a square or a string")
		}
	}
	if len(squares) != 2 {
		return nil, schemaErrorf(path, "must contain exactly 2 squares, got %d", len(squares))
	}
	return &domain.LatestMove{From: squares[0], To: squares[1], Side: side}, nil
}

func parsePlayers(path string, players []wirePlayer, state domain.GameState) ([2]domain.Player, error) {
	var (
		result  [2]domain.Player
		seen    [2]bool
		victors int
	)
	for i, w := range players {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		color, _ := domain.ParseColor(w.Color)
		idx := 0
		if color == domain.Black {
			idx = 1
		}
		if seen[idx] {
			return result, schemaErrorf(itemPath+".color", "duplicate player color %s", color)
		}
		seen[idx] = true
		if *w.Victory {
			victors++
			if victors > 1 || state == domain.InProgress {
				return result, schemaErrorf(itemPath+".victory", "victory set while game state is %s", state)
			}
		}
		result[idx] = domain.Player{
			Color:   color,
			InCheck: *w.InCheck,
			Victory: *w.Victory,
			Castling: domain.Castling{
				Kingside:  *w.Castling.Kingside,
				Queenside: *w.Castling.Queenside,
			},
		}
	}
	return result, nil
}

func parseMoveRecord(path string, items []jsoniter.RawMessage) (domain.MoveRecord, error) {
	from, err := parseLabeledCoord(path+"[0]", items[0])
	if err != nil {
		return domain.MoveRecord{}, err
	}
	to, err := parseLabeledCoord(path+"[1]", items[1])
	if err != nil {
		return domain.MoveRecord{}, err
	}
	record := domain.MoveRecord{From: from, To: to}
	if len(items) == 3 {
		var aux domain.Aux
		if err := json.Unmarshal(items[2], &aux); err != nil {
			return domain.MoveRecord{}, schemaErrorf(path+"[2]", "must be a pair of integers")
		}
		record.Aux = &aux
	}
	return record, nil
}

// parseLabeledCoord reads a ["A", 2] pair: letter file, one-based rank.
func parseLabeledCoord(path string, raw jsoniter.RawMessage) (domain.Coord, error) {
	var pair []any
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return domain.Coord{}, schemaErrorf(path, "must be a (file, rank) pair")
	}
	letter, ok := pair[0].(string)
	if !ok {
		return domain.Coord{}, schemaErrorf(path+"[0]", "file must be a string")
	}
	file, ok := domain.FileIndex(letter)
	if !ok {
		return domain.Coord{}, schemaErrorf(path+"[0]", "must be one of [A B C D E F G H]")
	}
	number, ok := pair[1].(float64)
	if !ok || number != math.Trunc(number) {
		return domain.Coord{}, schemaErrorf(path+"[1]", "rank must be an integer")
	}
	if number < 1 || number > domain.BoardSize {
		return domain.Coord{}, schemaErrorf(path+"[1]", "rank must be within 1..8")
	}
	return domain.Coord{File: file, Rank: int(number) - 1}, nil
}

func parseEaten(path string, items []jsoniter.RawMessage) ([]domain.Piece, error) {
	var pieces []domain.Piece
	for i, raw := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		piece, err := parsePiece(itemPath, raw)
		if err != nil {
			return nil, err
		}
		if piece.IsNone() {
			return nil, schemaErrorf(itemPath, "captured piece cannot be None")
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func orRoot(prefix string) string {
	if prefix == "" {
		return "$"
	}
	return prefix
}
