package core

type MoveType uint8

const (
	StandardMove MoveType = iota
	PromotionMove
	CastlingMove
	EnPassantMove
)

func (t MoveType) String() string {
	switch t {
	case StandardMove:
		return "StandardMove"
	case PromotionMove:
		return "PromotionMove"
	case CastlingMove:
		return "CastlingMove"
	case EnPassantMove:
		return "EnPassantMove"
	}
	return "Invalid"
}

// Move packs src (6 bits), dst (6 bits), move type (2 bits) and promotion
// piece (2 bits) into 16 bits. For CastlingMove the dst is the square of our
// own rook, which also covers the Chess960 encodings.
type Move uint16

const NullMove Move = 0

func newMove(src Square, dst Square, t MoveType, promo PieceType) Move {
	return Move(uint16(src)<<10 | uint16(dst)<<4 | uint16(t)<<2 | uint16(promo-Knight))
}

func Standard(src Square, dst Square) Move {
	return newMove(src, dst, StandardMove, Knight)
}

func Promotion(src Square, dst Square, promo PieceType) Move {
	return newMove(src, dst, PromotionMove, promo)
}

func Castling(src Square, dst Square) Move {
	return newMove(src, dst, CastlingMove, Knight)
}

func EnPassant(src Square, dst Square) Move {
	return newMove(src, dst, EnPassantMove, Knight)
}

func (m Move) Src() Square {
	return Square(m >> 10)
}

func (m Move) Dst() Square {
	return Square(m>>4) & 63
}

func (m Move) Type() MoveType {
	return MoveType(m>>2) & 3
}

func (m Move) Promo() PieceType {
	return PieceType(m&3) + Knight
}

func (m Move) SrcRank() int {
	return int(m.Src().Rank())
}

func (m Move) SrcFile() int {
	return int(m.Src().File())
}

func (m Move) DstRank() int {
	return int(m.Dst().Rank())
}

func (m Move) DstFile() int {
	return int(m.Dst().File())
}

func (m Move) IsNull() bool {
	return m == NullMove
}

// String renders the UCI form. Castling moves keep the king-takes-rook
// destination, which is what 960-aware GUIs expect.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	if m.Type() == PromotionMove {
		return m.Src().String() + m.Dst().String() + m.Promo().String()
	}
	return m.Src().String() + m.Dst().String()
}

func (m Move) DebugString() string {
	return m.String() + "/" + m.Type().String()
}
