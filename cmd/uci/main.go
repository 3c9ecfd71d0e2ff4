package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/bennyhinn18/chess/internal/runner"
	"github.com/bennyhinn18/chess/internal/search"
	"github.com/bennyhinn18/chess/internal/uci"
	"github.com/pkg/profile"
)

// engineLogger sends search logs to stderr, or to the gui as "info string"
// lines when debug is set.
func engineLogger(debug bool, out io.Writer, stderr io.Writer) Logger {
	if debug {
		return FuncLogger(func(s string) {
			for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
				fmt.Fprintln(out, "info string", line)
			}
		})
	}
	// stdout belongs to the protocol, so logs go to stderr
	return &ZerologLogger{Logger: NewConsoleLogger(stderr, "uci")}
}

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
	debug := Contains(args, "debug")
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile" && arg != "debug"
	})

	if len(args) > 0 && args[0] == "options" {
		for _, option := range search.AllSearchOptions {
			fmt.Println(option)
		}
		return
	}

	depth, err := ParseIntArg(args, "depth")
	if !IsNil(err) {
		panic(err)
	}
	args = FilterSlice(args, func(arg string) bool {
		return len(arg) < 6 || arg[:6] != "depth="
	})

	searchOptions, err := search.SearcherOptionsFromArgs(args...)
	if !IsNil(err) {
		panic(err)
	}

	if depth.IsEmpty() {
		depth = Some(EnvInt("CHESS_DEPTH", runner.DefaultDepth))
	}

	r := uci.NewUciRunner(runner.NewEngineRunner(runner.RunnerOptions{
		SearchOptions: searchOptions,
		Depth:         depth,
		Logger:        Some(engineLogger(debug, os.Stdout, os.Stderr)),
	}))

	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		input := scanner.Text()
		if input == "quit" {
			break
		}
		result, err := r.HandleInput(input)
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
			time.Sleep(200 * time.Millisecond)
			break
		}
		for _, v := range result {
			fmt.Println(v)
		}
	}
}
