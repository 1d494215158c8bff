package position

import (
	"github.com/kiryu-dev/chess-client/internal/domain"
)

// display[i][j] is stored[7-i][7-j].
func ToDisplayOrientation(board domain.Board) domain.Board {
	const last = domain.BoardSize - 1
	var out domain.Board
	for i := range out {
		for j := range out[i] {
			out[i][j] = board[last-i][last-j]
		}
	}
	return out
}
