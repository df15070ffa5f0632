package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/chocolatebakery/atomicgo/internal/position"

	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// Usage:
//
//	perft <depth> [fen <fen...> | frc <n> | dfrc <n>]
//
// Defaults to the orthodox starting position.
func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: perft <depth> [fen <fen> | frc <n> | dfrc <n>]")
		os.Exit(1)
	}

	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		fmt.Fprintln(os.Stderr, "invalid depth:", args[0])
		os.Exit(1)
	}

	pos := position.Starting()

	if len(args) > 1 {
		var setupErr Error
		switch args[1] {
		case "fen":
			fen := ""
			for _, part := range args[2:] {
				if fen != "" {
					fen += " "
				}
				fen += part
			}
			setupErr = pos.ResetFromFen(fen)
		case "frc":
			n, _ := strconv.ParseUint(args[2], 10, 32)
			setupErr = pos.ResetFromFrcIndex(uint32(n))
		case "dfrc":
			n, _ := strconv.ParseUint(args[2], 10, 32)
			setupErr = pos.ResetFromDfrcIndex(uint32(n))
		default:
			fmt.Fprintln(os.Stderr, "unknown position kind:", args[1])
			os.Exit(1)
		}
		if !IsNil(setupErr) {
			fmt.Fprintln(os.Stderr, setupErr.First())
			os.Exit(1)
		}
	}

	moves := pos.LegalMoves()
	bar := progressbar.Default(int64(len(moves)), "perft")

	start := time.Now()
	total := uint64(0)

	type divide struct {
		move  string
		nodes uint64
	}
	divides := []divide{}

	for _, move := range moves {
		pos.ApplyMoveUnchecked(move, nil, true)
		nodes := pos.Perft(depth - 1)
		pos.PopMove(nil)

		divides = append(divides, divide{move.String(), nodes})
		total += nodes
		_ = bar.Add(1)
	}

	elapsed := time.Since(start)

	sort.Slice(divides, func(i, j int) bool {
		return divides[i].move < divides[j].move
	})
	for _, d := range divides {
		fmt.Printf("%v: %v\n", d.move, d.nodes)
	}

	nps := float64(total) / elapsed.Seconds()
	fmt.Printf("\nnodes %v in %v (%v nps)\n",
		humanize.Comma(int64(total)), elapsed.Round(time.Millisecond), humanize.Comma(int64(nps)))
}
