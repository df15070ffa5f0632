package position

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"

	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// HistoryString renders the moves that produced the current state, oldest
// first, for diagnosing incremental-update bugs.
func (p *Position) HistoryString() string {
	parts := []string{}
	for i := 0; i < len(p.states)-1; i++ {
		parts = append(parts, p.states[i].LastMove.DebugString())
	}
	return strings.Join(parts, " ")
}

func (p *Position) clone() *Position {
	result := &Position{
		states:      append(make([]BoardState, 0, cap(p.states)), p.states...),
		keys:        append(make([]uint64, 0, cap(p.keys)), p.keys...),
		blackToMove: p.blackToMove,
		fullmove:    p.fullmove,
	}
	return result
}

// Verify rebuilds the position from scratch and compares the incrementally
// maintained Zobrist key and en passant square against the regenerated
// ones. It is the primary debugging tool for the apply paths and is only
// called from tests and debug builds.
func (p *Position) Verify(hasHistory bool, logger Logger) bool {
	regened := p.clone()
	regened.Regen(hasHistory)

	failed := false

	if p.currState().EnPassant != regened.currState().EnPassant {
		logger.Printf("en passant squares do not match: current %v regened %v\n",
			p.currState().EnPassant, regened.currState().EnPassant)
		failed = true
	}

	if p.currState().Key != regened.currState().Key {
		logger.Printf("keys do not match: current %016X regened %016X\n",
			p.currState().Key, regened.currState().Key)
		failed = true
	}

	if !p.currState().Boards.Consistent() {
		logger.Printf("mailbox and bitboards disagree\n")
		failed = true
	}

	if failed {
		logger.Println("history:", p.HistoryString())
		logger.Println(spew.Sdump(p.currState().Boards.Bbs))
	}

	return !failed
}

func (p *Position) String() string {
	return fmt.Sprintf("Position(%v)", p.ToFen())
}

const _hintForeground = "\033[38;5;244m"
const _whiteForeground = "\033[38;5;255m"
const _blackForeground = "\033[38;5;232m"
const _whiteBackground = "\033[48;5;244m"
const _blackBackground = "\033[48;5;243m"
const _resetColors = "\x1b[0m"

// Unicode renders the board with ANSI colors for the terminal.
func (p *Position) Unicode() string {
	result := "  "
	for file := 0; file < 8; file++ {
		result += _hintForeground + " " + File(file).String() + " " + _resetColors
	}
	result += "\n"

	for rank := 7; rank >= 0; rank-- {
		result += _hintForeground + Rank(rank).String() + " " + _resetColors
		for file := 0; file < 8; file++ {
			squareColor := (file%2 + rank%2) % 2
			piece := p.Boards().PieceOn(rank, file)

			if squareColor == 0 {
				result += _blackBackground
			} else {
				result += _whiteBackground
			}
			if piece != PieceNone && piece.Color() == White {
				result += _whiteForeground
			} else {
				result += _blackForeground
			}

			result += " " + piece.Unicode() + " "
			result += _resetColors
		}
		result += "\n"
	}

	return result
}
