package domain

var backRank = [BoardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func StartingPosition() Chess {
	board := EmptyBoard()
	for file := 0; file < BoardSize; file++ {
		board[file][0].Piece = NewPiece(backRank[file], White)
		board[file][1].Piece = NewPiece(Pawn, White)
		board[file][6].Piece = NewPiece(Pawn, Black)
		board[file][7].Piece = NewPiece(backRank[file], Black)

		pawn := Coord{File: file, Rank: 1}
		board[file][1].PossibleMoves = []CandidateMove{
			{From: pawn, To: Coord{File: file, Rank: 2}, Aux: &Aux{}},
			{From: pawn, To: Coord{File: file, Rank: 3}, Aux: &Aux{}},
		}
	}
	for _, file := range []int{1, 6} {
		knight := Coord{File: file, Rank: 0}
		board[file][0].PossibleMoves = []CandidateMove{
			{From: knight, To: Coord{File: file - 1, Rank: 2}, Aux: &Aux{}},
			{From: knight, To: Coord{File: file + 1, Rank: 2}, Aux: &Aux{}},
		}
	}
	return Chess{
		Board:     board,
		Players:   [2]Player{NewPlayer(White), NewPlayer(Black)},
		GameState: InProgress,
	}
}
