package uci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/chocolatebakery/atomicgo/internal/eval"
	"github.com/chocolatebakery/atomicgo/internal/opts"
	"github.com/chocolatebakery/atomicgo/internal/position"
	"github.com/chocolatebakery/atomicgo/internal/see"
	"github.com/chocolatebakery/atomicgo/internal/tunable"

	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// UciRunner speaks the subset of UCI the Atomic core needs: position setup,
// option handling, and debugging extensions (d, fen, perft, see). The
// search driver above owns the real `go` handling; here `go` answers with
// the first legal move so a GUI session stays alive.
type UciRunner struct {
	Position *position.Position
	Nnue     *eval.NnueState
	Logger   Logger
}

func NewUciRunner(logger Logger) *UciRunner {
	pos := position.Starting()
	nnue := eval.NewNnueState()
	nnue.Reset(pos.Bbs(), pos.King(Black), pos.King(White))

	return &UciRunner{
		Position: pos,
		Nnue:     nnue,
		Logger:   logger,
	}
}

func (u *UciRunner) resetNnue() {
	u.Nnue.Reset(u.Position.Bbs(), u.Position.King(Black), u.Position.King(White))
}

func (u *UciRunner) setupPosition(input string) Error {
	s := strings.TrimPrefix(input, "position ")

	var err Error
	switch {
	case strings.HasPrefix(s, "startpos"):
		u.Position.ResetToStarting()
	case strings.HasPrefix(s, "fen "):
		fen := strings.SplitN(strings.TrimPrefix(s, "fen "), " moves ", 2)[0]
		err = u.Position.ResetFromFen(fen)
	case strings.HasPrefix(s, "frc "):
		n, parseErr := strconv.ParseUint(strings.Fields(strings.TrimPrefix(s, "frc "))[0], 10, 32)
		if parseErr != nil {
			return Wrap(parseErr)
		}
		err = u.Position.ResetFromFrcIndex(uint32(n))
	case strings.HasPrefix(s, "dfrc "):
		n, parseErr := strconv.ParseUint(strings.Fields(strings.TrimPrefix(s, "dfrc "))[0], 10, 32)
		if parseErr != nil {
			return Wrap(parseErr)
		}
		err = u.Position.ResetFromDfrcIndex(uint32(n))
	default:
		return Errorf("couldn't parse position '%v'", s)
	}

	if !IsNil(err) {
		return err
	}

	u.resetNnue()

	if strings.Contains(input, " moves ") {
		for _, moveStr := range strings.Fields(strings.SplitN(input, " moves ", 2)[1]) {
			move, err := u.Position.MoveFromUci(moveStr)
			if !IsNil(err) {
				return err
			}
			if !u.Position.IsPseudolegal(move) || !u.Position.IsLegal(move) {
				return Errorf("illegal move %v in position command", moveStr)
			}
			u.Position.ApplyMoveUnchecked(move, u.Nnue, true)
		}
	}

	return NilError
}

func (u *UciRunner) setOption(input string) Error {
	fields := strings.Fields(input)

	name := ""
	value := ""
	for i := 0; i < len(fields); i++ {
		if fields[i] == "name" && i+1 < len(fields) {
			name = fields[i+1]
		}
		if fields[i] == "value" && i+1 < len(fields) {
			value = fields[i+1]
		}
	}

	if name == "UCI_Chess960" {
		opts.SetChess960(value == "true")
		return NilError
	}

	if param := tunable.Lookup(name); param.HasValue() {
		v, err := strconv.Atoi(value)
		if err != nil {
			return Wrap(err)
		}
		return param.Value().Set(v)
	}

	return Errorf("unknown option '%v'", name)
}

func (u *UciRunner) HandleInput(input string) ([]string, Error) {
	result := []string{}

	switch {
	case input == "uci":
		result = append(result, "id name atomicgo 1")
		result = append(result, "id author the atomicgo authors")
		result = append(result, "option name UCI_Chess960 type check default false")
		for _, param := range tunable.All() {
			result = append(result, param.String())
		}
		result = append(result, "uciok")

	case input == "isready":
		result = append(result, "readyok")

	case input == "ucinewgame":
		u.Position.ClearStateHistory()

	case strings.HasPrefix(input, "setoption "):
		return result, u.setOption(input)

	case strings.HasPrefix(input, "position "):
		return result, u.setupPosition(input)

	case input == "d":
		result = append(result, u.Position.Unicode())
		result = append(result, u.Position.ToFen())

	case input == "fen":
		result = append(result, u.Position.ToFen())

	case strings.HasPrefix(input, "perft "):
		depth, err := strconv.Atoi(strings.TrimPrefix(input, "perft "))
		if err != nil {
			return result, Wrap(err)
		}
		total := uint64(0)
		for move, nodes := range u.Position.PerftDivide(depth) {
			total += nodes
			result = append(result, fmt.Sprintf("%v: %v", move, nodes))
		}
		result = append(result, fmt.Sprintf("nodes: %v", humanize.Comma(int64(total))))

	case strings.HasPrefix(input, "see "):
		moveStr := strings.TrimPrefix(input, "see ")
		move, err := u.Position.MoveFromUci(moveStr)
		if !IsNil(err) {
			return result, err
		}
		result = append(result, fmt.Sprintf("see gain: %v", see.GainAtomic(u.Position, move)))

	case strings.HasPrefix(input, "go"):
		if u.Position.IsVariantOver() {
			return result, Errorf("game is over")
		}
		moves := u.Position.LegalMoves()
		if len(moves) == 0 {
			return result, Errorf("no legal moves")
		}
		result = append(result, fmt.Sprintf("bestmove %v", moves[0]))
	}

	return result, NilError
}
