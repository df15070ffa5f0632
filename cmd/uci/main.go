package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/profile"

	"github.com/chocolatebakery/atomicgo/internal/uci"

	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/CmdUciMain"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}

	r := uci.NewUciRunner(FuncLogger(func(s string) {
		fmt.Print(s)
	}))

	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		input := scanner.Text()
		if input == "quit" {
			break
		}
		result, err := r.HandleInput(input)
		if !IsNil(err) {
			fmt.Println("info string", err.First())
			continue
		}
		for _, v := range result {
			fmt.Println(v)
		}
	}
}
