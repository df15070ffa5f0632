package core

import (
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

type Square uint8

const SquareNone Square = 64

type File uint8
type Rank uint8

func SquareFromFileRank(file File, rank Rank) Square {
	return Square(uint8(rank)<<3 | uint8(file))
}

func ToSquare(rank int, file int) Square {
	return Square(rank<<3 | file)
}

func (s Square) File() File {
	return File(s & 7)
}

func (s Square) Rank() Rank {
	return Rank(s >> 3)
}

func (s Square) Bit() Bitboard {
	return SingleBitboard(s)
}

// RelativeRank maps a rank to the given color's point of view, so rank 0 is
// always that color's back rank.
func RelativeRank(c Color, rank int) int {
	if c == White {
		return rank
	}
	return 7 - rank
}

func (f File) String() string {
	return [8]string{"a", "b", "c", "d", "e", "f", "g", "h"}[f]
}

func (r Rank) String() string {
	return [8]string{"1", "2", "3", "4", "5", "6", "7", "8"}[r]
}

func (s Square) String() string {
	if s >= SquareNone {
		return "-"
	}
	return s.File().String() + s.Rank().String()
}

func FileFromChar(c byte) (File, Error) {
	file := int(c - 'a')
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %v", c)
	}
	return File(file), NilError
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c - '1')
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %v", c)
	}
	return Rank(rank), NilError
}

func SquareFromString(s string) (Square, Error) {
	if len(s) != 2 {
		return SquareNone, Errorf("invalid square %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return SquareNone, Errorf("invalid square %v with errors %w, %w", s, fileErr, rankErr)
	}

	return SquareFromFileRank(file, rank), NilError
}

// Named squares for the orthodox castling shortcuts and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)
