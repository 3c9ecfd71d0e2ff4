package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	. "github.com/bennyhinn18/chess/internal/accuracy"
	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/bennyhinn18/chess/internal/runner"
	"github.com/dustin/go-humanize"
)

func marshalResults(jsonPath string, results SuiteResult) Error {
	output, err := json.MarshalIndent(results, "", "  ")
	if !IsNil(err) {
		return Wrap(err)
	}
	err = os.WriteFile(jsonPath, output, 0644)
	return Wrap(err)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println("usage:")
		fmt.Println(" > accuracy <epd> [depth=N] [json=<path>]")
		return
	}

	epdPath := args[0]
	if !strings.HasSuffix(epdPath, ".epd") {
		epdPath = RootDir() + "/internal/accuracy/testdata/" + epdPath + ".epd"
	}

	depth, err := ParseIntArg(args[1:], "depth")
	if !IsNil(err) {
		panic(err)
	}

	epds, err := LoadEpd(epdPath)
	if !IsNil(err) {
		panic(err)
	}

	logger := NewLiveLogger(os.Stdout)
	footer := NewFooterLogger(logger, 0)

	r := runner.NewEngineRunner(runner.RunnerOptions{
		Depth: Some(depth.ValueOr(runner.DefaultDepth)),
	})

	solved := 0
	suite, err := RunSuite(r, epds, SearchParams{}, func(i int, result EpdResult) {
		if result.Success {
			solved++
		}
		logger.Println(fmt.Sprintf("%d/%d", i+1, len(epds)), result)
		footer.Printf("solved %d of %d, %v nodes", solved, i+1, humanize.Comma(int64(r.LastStats.Nodes)))
	})
	if !IsNil(err) {
		panic(err)
	}

	logger.Println(fmt.Sprintf("solved %d/%d (%.1f%%), %v nodes at depth %d",
		suite.Solved, len(suite.Results), suite.Percent(), humanize.Comma(int64(suite.Nodes)), r.Depth()))

	for _, arg := range args[1:] {
		if strings.HasPrefix(arg, "json=") {
			err = marshalResults(strings.TrimPrefix(arg, "json="), suite)
			if !IsNil(err) {
				panic(err)
			}
		}
	}
}
