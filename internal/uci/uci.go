package uci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
)

type UciRunner struct {
	Runner Runner
	// Depth overrides the runner's own default once set by setoption.
	Depth Optional[int]
}

func NewUciRunner(runner Runner) *UciRunner {
	return &UciRunner{Runner: runner}
}

func parseFen(input string) (string, Error) {
	s := strings.TrimPrefix(input, "position ")

	if strings.HasPrefix(s, "fen ") {
		s = strings.TrimPrefix(s, "fen ")
		return strings.TrimSpace(strings.Split(s, " moves")[0]), NilError
	} else if strings.HasPrefix(s, "startpos") {
		return game.StartFen, NilError
	}

	return "", Errorf("couldn't parse '%v'", s)
}

func parseMoves(input string) []string {
	result := []string{}
	if strings.Contains(input, " moves ") {
		fields := strings.Fields(strings.SplitN(input, " moves ", 2)[1])
		result = append(result, fields...)
	}
	return result
}

func parsePosition(input string) (Position, Error) {
	fen, err := parseFen(input)
	if !IsNil(err) {
		return Position{}, err
	}
	return Position{Fen: fen, Moves: parseMoves(input)}, NilError
}

// parseGo reads "go depth N". Other go parameters are accepted and ignored
// since the search is depth limited only.
func parseGo(input string) (SearchParams, Error) {
	params := SearchParams{}
	fields := strings.Fields(input)
	for i := 1; i < len(fields); i++ {
		if fields[i] == "depth" && i+1 < len(fields) {
			depth, err := strconv.Atoi(fields[i+1])
			if err != nil || depth < 0 {
				return params, Errorf("invalid depth in '%v'", input)
			}
			params.Depth = Some(depth)
			i++
		}
	}
	return params, NilError
}

func (u *UciRunner) setOption(input string) Error {
	fields := strings.Fields(input)
	if len(fields) != 5 || fields[1] != "name" || fields[3] != "value" {
		return Errorf("couldn't parse '%v'", input)
	}
	if !strings.EqualFold(fields[2], "depth") {
		return Errorf("unknown option '%v'", fields[2])
	}
	depth, err := strconv.Atoi(fields[4])
	if err != nil || depth < 0 {
		return Errorf("invalid depth '%v'", fields[4])
	}
	u.Depth = Some(depth)
	return NilError
}

func (u *UciRunner) HandleInput(input string) ([]string, Error) {
	input = strings.TrimSpace(input)
	result := []string{}
	if input == "uci" {
		result = append(result, "id name bennyhinn18-chess")
		result = append(result, "id author bennyhinn18")
		result = append(result, "option name Depth type spin default 3 min 0 max 8")
		result = append(result, "uciok")
	} else if input == "ucinewgame" {
		u.Runner.Reset()
	} else if input == "isready" {
		result = append(result, "readyok")
	} else if strings.HasPrefix(input, "setoption ") {
		err := u.setOption(input)
		if !IsNil(err) {
			return result, err
		}
	} else if strings.HasPrefix(input, "position ") {
		position, err := parsePosition(input)
		if !IsNil(err) {
			return result, err
		}
		if u.Runner.IsNew() {
			err = u.Runner.SetupPosition(position)
		} else {
			err = u.Runner.PerformMoves(position.Fen, position.Moves)
			if !IsNil(err) {
				// a different start position starts a fresh game
				u.Runner.Reset()
				err = u.Runner.SetupPosition(position)
			}
		}
		if !IsNil(err) {
			return result, err
		}
	} else if input == "go" || strings.HasPrefix(input, "go ") {
		params, err := parseGo(input)
		if !IsNil(err) {
			return result, err
		}
		if params.Depth.IsEmpty() {
			params.Depth = u.Depth
		}

		move, score, nodes, err := u.Runner.Search(params)
		if !IsNil(err) {
			return result, err
		}

		if move.IsEmpty() {
			result = append(result, "bestmove 0000")
			return result, NilError
		}

		result = append(result, fmt.Sprintf("info score cp %v nodes %v", score.Value(), nodes))
		result = append(result, fmt.Sprintf("bestmove %v", move.Value()))
	}
	return result, NilError
}
