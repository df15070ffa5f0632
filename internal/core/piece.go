package core

import (
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// Color uses the low bit of a Piece: 0 is black, 1 is white.
type Color uint8

const (
	Black Color = iota
	White
)

func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	return [2]string{"black", "white"}[c]
}

func ColorFromString(s string) (Color, Error) {
	switch s {
	case "b":
		return Black, NilError
	case "w":
		return White, NilError
	default:
		return White, Errorf("invalid color %v", s)
	}
}

type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PieceTypeNone
)

func (t PieceType) String() string {
	return [7]string{"p", "n", "b", "r", "q", "k", "?"}[t]
}

func PieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	default:
		return PieceTypeNone
	}
}

// Piece packs type and color: type in the high bits, color in bit 0.
type Piece uint8

const (
	BlackPawn Piece = iota
	WhitePawn
	BlackKnight
	WhiteKnight
	BlackBishop
	WhiteBishop
	BlackRook
	WhiteRook
	BlackQueen
	WhiteQueen
	BlackKing
	WhiteKing
	PieceNone
)

func ColorPiece(t PieceType, c Color) Piece {
	return Piece(uint8(t)<<1 | uint8(c))
}

func (p Piece) Type() PieceType {
	return PieceType(p >> 1)
}

func (p Piece) Color() Color {
	return Color(p & 1)
}

func (p Piece) FlipColor() Piece {
	return p ^ 1
}

// CopyPieceColor builds the piece of type t with p's color.
func CopyPieceColor(p Piece, t PieceType) Piece {
	return ColorPiece(t, p.Color())
}

var _pieceRunes = [13]rune{
	'p', 'P', 'n', 'N', 'b', 'B', 'r', 'R', 'q', 'Q', 'k', 'K', ' ',
}

func (p Piece) Rune() rune {
	return _pieceRunes[p]
}

func (p Piece) String() string {
	return string(_pieceRunes[p])
}

func PieceFromRune(c rune) (Piece, Error) {
	for piece, r := range _pieceRunes {
		if Piece(piece) != PieceNone && r == c {
			return Piece(piece), NilError
		}
	}
	return PieceNone, Errorf("invalid piece %v", string(c))
}

func (p Piece) Unicode() string {
	return [13]string{
		"♟", "♙", "♞", "♘", "♝", "♗", "♜", "♖", "♛", "♕", "♚", "♔", " ",
	}[p]
}
