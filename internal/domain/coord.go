package domain

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const BoardSize = 8

// Coord is zero-based: file 0 is A, rank 0 is White's first rank.
type Coord struct {
	File int
	Rank int
}

func (c Coord) Valid() bool {
	return c.File >= 0 && c.File < BoardSize && c.Rank >= 0 && c.Rank < BoardSize
}

func (c Coord) Label() string {
	return strings.ToLower(FileLetter(c.File)) + strconv.Itoa(c.Rank+1)
}

func FileIndex(letter string) (int, bool) {
	if len(letter) != 1 {
		return 0, false
	}
	ch := letter[0]
	if ch >= 'a' && ch <= 'h' {
		ch -= 'a' - 'A'
	}
	if ch < 'A' || ch > 'H' {
		return 0, false
	}
	return int(ch - 'A'), true
}

func FileLetter(file int) string {
	if file < 0 || file >= BoardSize {
		return "?"
	}
	return string(rune('A' + file))
}

func ParseLabel(label string) (Coord, error) {
	label = strings.TrimSpace(label)
	if len(label) != 2 {
		return Coord{}, errors.WithMessagef(ErrInvalidSquare, "label '%s'", label)
	}
	file, ok := FileIndex(label[:1])
	if !ok {
		return Coord{}, errors.WithMessagef(ErrInvalidSquare, "file in label '%s'", label)
	}
	rank := int(label[1] - '1')
	if rank < 0 || rank >= BoardSize {
		return Coord{}, errors.WithMessagef(ErrInvalidSquare, "rank in label '%s'", label)
	}
	return Coord{File: file, Rank: rank}, nil
}

func RankLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	return label[len(label)-1:]
}
