package uci

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

func newTestRunner() *UciRunner {
	return NewUciRunner(FuncLogger(func(string) {}))
}

func TestUciHandshake(t *testing.T) {
	r := newTestRunner()

	result, err := r.HandleInput("uci")
	assert.True(t, IsNil(err))
	assert.Contains(t, result, "uciok")
	assert.Contains(t, result, "option name UCI_Chess960 type check default false")

	result, err = r.HandleInput("isready")
	assert.True(t, IsNil(err))
	assert.Equal(t, []string{"readyok"}, result)
}

func TestPositionWithMoves(t *testing.T) {
	r := newTestRunner()

	_, err := r.HandleInput("position startpos moves e2e4 e7e5")
	assert.True(t, IsNil(err))

	result, err := r.HandleInput("fen")
	assert.True(t, IsNil(err))
	assert.Equal(t, []string{"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"}, result)
}

func TestPositionFen(t *testing.T) {
	r := newTestRunner()

	fen := "4k3/8/8/pP6/8/8/8/4K3 w - a6 0 1"
	_, err := r.HandleInput("position fen " + fen + " moves b5a6")
	assert.True(t, IsNil(err))

	result, _ := r.HandleInput("fen")
	assert.Equal(t, []string{"4k3/8/8/8/8/8/8/4K3 b - - 0 1"}, result)
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	r := newTestRunner()

	_, err := r.HandleInput("position startpos moves e2e5")
	assert.False(t, IsNil(err))
}

func TestSetOptionTunable(t *testing.T) {
	r := newTestRunner()

	_, err := r.HandleInput("setoption name SeePawnValue value 120")
	assert.True(t, IsNil(err))

	_, err = r.HandleInput("setoption name SeePawnValue value 10000")
	assert.False(t, IsNil(err))

	_, err = r.HandleInput("setoption name NoSuchOption value 1")
	assert.False(t, IsNil(err))

	// put it back for the other tests
	_, err = r.HandleInput("setoption name SeePawnValue value 100")
	assert.True(t, IsNil(err))
}

func TestPerftCommand(t *testing.T) {
	r := newTestRunner()

	_, err := r.HandleInput("position startpos")
	assert.True(t, IsNil(err))

	result, err := r.HandleInput("perft 1")
	assert.True(t, IsNil(err))

	found := false
	for _, line := range result {
		if strings.HasPrefix(line, "nodes: ") {
			assert.Equal(t, "nodes: 20", line)
			found = true
		}
	}
	assert.True(t, found)
}

func TestGoAnswersWithLegalMove(t *testing.T) {
	r := newTestRunner()

	_, err := r.HandleInput("position startpos")
	assert.True(t, IsNil(err))

	result, err := r.HandleInput("go depth 1")
	assert.True(t, IsNil(err))
	assert.Len(t, result, 1)
	assert.True(t, strings.HasPrefix(result[0], "bestmove "))

	moveStr := strings.TrimPrefix(result[0], "bestmove ")
	move, parseErr := r.Position.MoveFromUci(moveStr)
	assert.True(t, IsNil(parseErr))
	assert.True(t, r.Position.IsLegal(move))
}

func TestSeeProbe(t *testing.T) {
	r := newTestRunner()

	_, err := r.HandleInput("position fen rnbqkbnr/pppp1ppp/8/8/4p3/5P2/PPPP1PPP/RNBQKBNR w - - 0 1")
	assert.True(t, IsNil(err))

	result, err := r.HandleInput("see f3e4")
	assert.True(t, IsNil(err))
	assert.Equal(t, []string{"see gain: -1"}, result)
}

func TestUcinewgameKeepsPosition(t *testing.T) {
	r := newTestRunner()

	_, err := r.HandleInput("position startpos moves e2e4")
	assert.True(t, IsNil(err))
	fen := r.Position.ToFen()

	_, err = r.HandleInput("ucinewgame")
	assert.True(t, IsNil(err))
	assert.Equal(t, fen, r.Position.ToFen())
	assert.Equal(t, 0, r.Position.Ply())
}
