package position

import (
	"strconv"
	"strings"

	"github.com/chocolatebakery/atomicgo/internal/opts"

	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

const StartingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ResetToStarting sets up the orthodox starting position.
func (p *Position) ResetToStarting() {
	p.states = p.states[:1]
	p.keys = p.keys[:0]

	state := p.currState()
	*state = newBoardState()

	bbs := &state.Boards.Bbs

	bbs.PieceBbs[Pawn] = 0x00FF00000000FF00
	bbs.PieceBbs[Knight] = 0x4200000000000042
	bbs.PieceBbs[Bishop] = 0x2400000000000024
	bbs.PieceBbs[Rook] = 0x8100000000000081
	bbs.PieceBbs[Queen] = 0x0800000000000008
	bbs.PieceBbs[King] = 0x1000000000000010

	bbs.ColorBbs[Black] = 0xFFFF000000000000
	bbs.ColorBbs[White] = 0x000000000000FFFF

	state.CastlingRooks.Black().Kingside = H8
	state.CastlingRooks.Black().Queenside = A8
	state.CastlingRooks.White().Kingside = H1
	state.CastlingRooks.White().Queenside = A1

	p.blackToMove = false
	p.fullmove = 1

	p.Regen(false)
}

var _fenFieldNames = []string{
	"ranks",
	"next move color",
	"castling availability",
	"en passant square",
	"halfmove clock",
	"fullmove number",
}

// ResetFromFen replaces the position with the one described by fen. On
// failure the position is left untouched.
func (p *Position) ResetFromFen(fen string) Error {
	tokens := strings.Fields(fen)

	if len(tokens) > 6 {
		return Errorf("excess tokens after fullmove number in fen %v", fen)
	}
	if len(tokens) < 6 {
		return Errorf("missing %v in fen %v", _fenFieldNames[len(tokens)], fen)
	}

	newState := newBoardState()

	ranks := strings.Split(tokens[0], "/")
	if len(ranks) > 8 {
		return Errorf("too many ranks in fen %v", fen)
	}
	if len(ranks) < 8 {
		return Errorf("not enough ranks in fen %v", fen)
	}

	for rankIdx, rank := range ranks {
		fileIdx := 0

		for _, c := range rank {
			if fileIdx >= 8 {
				return Errorf("too many files in rank %v in fen %v", rankIdx, fen)
			}

			if c >= '1' && c <= '8' {
				fileIdx += int(c - '0')
			} else if piece, err := PieceFromRune(c); IsNil(err) {
				newState.Boards.SetPiece(ToSquare(7-rankIdx, fileIdx), piece)
				fileIdx++
			} else {
				return Errorf("invalid piece character %v in fen %v", string(c), fen)
			}
		}

		if fileIdx > 8 {
			return Errorf("too many files in rank %v in fen %v", rankIdx, fen)
		}
		if fileIdx < 8 {
			return Errorf("not enough files in rank %v in fen %v", rankIdx, fen)
		}
	}

	newBbs := &newState.Boards.Bbs

	if count := newBbs.Kings(Black).PopCount(); count != 1 {
		return Errorf("black must have exactly 1 king, %v in fen %v", count, fen)
	}
	if count := newBbs.Kings(White).PopCount(); count != 1 {
		return Errorf("white must have exactly 1 king, %v in fen %v", count, fen)
	}
	if newBbs.Occupancy().PopCount() > 32 {
		return Errorf("too many pieces in fen %v", fen)
	}

	newState.Kings[Black] = newBbs.Kings(Black).LowestSquare()
	newState.Kings[White] = newBbs.Kings(White).LowestSquare()

	newBlackToMove := false
	switch tokens[1] {
	case "b":
		newBlackToMove = true
	case "w":
	default:
		return Errorf("invalid next move color in fen %v", fen)
	}

	if err := parseCastlingFlags(&newState, tokens[2], fen); !IsNil(err) {
		return err
	}

	if tokens[3] != "-" {
		enPassant, err := SquareFromString(tokens[3])
		if !IsNil(err) {
			return Errorf("invalid en passant square in fen %v", fen)
		}
		newState.EnPassant = enPassant
	}

	halfmove, err := strconv.ParseUint(tokens[4], 10, 16)
	if err != nil {
		return Errorf("invalid halfmove clock in fen %v", fen)
	}
	newState.Halfmove = uint16(halfmove)

	fullmove, err := strconv.ParseUint(tokens[5], 10, 32)
	if err != nil {
		return Errorf("invalid fullmove number in fen %v", fen)
	}

	p.states = p.states[:1]
	p.keys = p.keys[:0]

	p.blackToMove = newBlackToMove
	p.fullmove = uint32(fullmove)

	*p.currState() = newState

	p.Regen(false)

	return NilError
}

// parseCastlingFlags fills the castling rook squares. Orthodox letters map
// to the corner rooks; in 960 mode file letters name the rook directly and
// the k/q/K/Q shorthand means the outermost rook on that side of the king.
func parseCastlingFlags(state *BoardState, flags string, fen string) Error {
	if len(flags) > 4 {
		return Errorf("invalid castling availability in fen %v", fen)
	}
	if flags == "-" {
		return NilError
	}

	if !opts.Chess960() {
		for _, flag := range flags {
			switch flag {
			case 'k':
				state.CastlingRooks.Black().Kingside = H8
			case 'q':
				state.CastlingRooks.Black().Queenside = A8
			case 'K':
				state.CastlingRooks.White().Kingside = H1
			case 'Q':
				state.CastlingRooks.White().Queenside = A1
			default:
				return Errorf("invalid castling availability in fen %v", fen)
			}
		}
		return NilError
	}

	for _, flag := range flags {
		switch {
		case flag >= 'a' && flag <= 'h':
			file := File(flag - 'a')
			kingFile := state.BlackKing().File()

			if file == kingFile {
				return Errorf("invalid castling availability in fen %v", fen)
			}
			if file < kingFile {
				state.CastlingRooks.Black().Queenside = SquareFromFileRank(file, 7)
			} else {
				state.CastlingRooks.Black().Kingside = SquareFromFileRank(file, 7)
			}

		case flag >= 'A' && flag <= 'H':
			file := File(flag - 'A')
			kingFile := state.WhiteKing().File()

			if file == kingFile {
				return Errorf("invalid castling availability in fen %v", fen)
			}
			if file < kingFile {
				state.CastlingRooks.White().Queenside = SquareFromFileRank(file, 0)
			} else {
				state.CastlingRooks.White().Kingside = SquareFromFileRank(file, 0)
			}

		case flag == 'k' || flag == 'q' || flag == 'K' || flag == 'Q':
			color := Black
			if flag == 'K' || flag == 'Q' {
				color = White
			}
			kingside := flag == 'k' || flag == 'K'

			rook := outermostRook(state, color, kingside)
			if rook == SquareNone {
				return Errorf("no castling rook for %v in fen %v", string(flag), fen)
			}
			if kingside {
				state.CastlingRooks.Color(color).Kingside = rook
			} else {
				state.CastlingRooks.Color(color).Queenside = rook
			}

		default:
			return Errorf("invalid castling availability in fen %v", fen)
		}
	}

	return NilError
}

// outermostRook scans from the board edge toward the king.
func outermostRook(state *BoardState, color Color, kingside bool) Square {
	rank := RelativeRank(color, 0) * 8
	kingFile := int(state.King(color).File())
	rook := ColorPiece(Rook, color)

	if kingside {
		for file := 7; file > kingFile; file-- {
			if state.Boards.PieceAt(Square(rank+file)) == rook {
				return Square(rank + file)
			}
		}
	} else {
		for file := 0; file < kingFile; file++ {
			if state.Boards.PieceAt(Square(rank+file)) == rook {
				return Square(rank + file)
			}
		}
	}
	return SquareNone
}

func Starting() *Position {
	p := NewPosition()
	p.ResetToStarting()
	return p
}

func FromFen(fen string) (*Position, Error) {
	p := NewPosition()
	if err := p.ResetFromFen(fen); !IsNil(err) {
		return nil, err
	}
	return p, NilError
}
