package accuracy

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
)

func EpdToFen(epd string) string {
	parts := strings.Fields(epd)
	if len(parts) > 4 {
		parts = parts[0:4]
	}
	return strings.Join(parts, " ")
}

// epdOperation returns the operand of an operation like `bm Nf3;`.
func epdOperation(opcode string, epd string) Optional[string] {
	fields := strings.Fields(epd)
	if len(fields) <= 4 {
		return Empty[string]()
	}
	operations := strings.Join(fields[4:], " ")
	for _, op := range strings.Split(operations, ";") {
		op = strings.TrimSpace(op)
		if strings.HasPrefix(op, opcode+" ") {
			return Some(strings.TrimSpace(strings.TrimPrefix(op, opcode+" ")))
		}
	}
	return Empty[string]()
}

// MovesFromEpd converts the san moves of a bm or am operation to uci.
func MovesFromEpd(prefix string, epd string, g *game.GameState) ([]string, Error) {
	operand := epdOperation(prefix, epd)
	if operand.IsEmpty() {
		return []string{}, NilError
	}

	moves := []string{}
	for _, san := range strings.FieldsFunc(operand.Value(), func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		move, err := g.MoveFromSan(san)
		if !IsNil(err) {
			return []string{}, err
		}
		moves = append(moves, move.String())
	}

	return moves, NilError
}

type Epd struct {
	Epd    string
	Fen    string
	Id     string
	Player Player

	BestMoves  []string
	AvoidMoves []string
}

func ParseEpd(epd string) (*Epd, Error) {
	fen := EpdToFen(epd)
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, Errorf("epd is missing the side to move: %v", epd)
	}
	player, err := PlayerFromString(fields[1])
	if !IsNil(err) {
		return nil, err
	}

	g, err := game.GamestateFromFenString(fen)
	if !IsNil(err) {
		return nil, err
	}

	bestMoves, err := MovesFromEpd("bm", epd, g)
	if !IsNil(err) {
		return nil, err
	}

	avoidMoves, err := MovesFromEpd("am", epd, g)
	if !IsNil(err) {
		return nil, err
	}

	if len(bestMoves) == 0 && len(avoidMoves) == 0 {
		return nil, Errorf("no bm or am in epd: %v", epd)
	}

	return &Epd{
		Epd:        epd,
		Fen:        fen,
		Id:         strings.Trim(epdOperation("id", epd).ValueOr(""), `"`),
		Player:     player,
		BestMoves:  bestMoves,
		AvoidMoves: avoidMoves,
	}, NilError
}

func LoadEpd(path string) ([]string, Error) {
	file, err := WrapReturn(os.Open(path))
	if !IsNil(err) {
		return []string{}, err
	}
	defer file.Close()

	results := []string{}

	fscanner := bufio.NewScanner(file)
	for fscanner.Scan() {
		line := strings.TrimSpace(fscanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		results = append(results, line)
	}

	return results, Wrap(fscanner.Err())
}

func calculateSuccess(move string, bestMoves []string, avoidMoves []string) bool {
	if len(bestMoves) > 0 && !Contains(bestMoves, move) {
		return false
	}
	if len(avoidMoves) > 0 && Contains(avoidMoves, move) {
		return false
	}
	return true
}

type EpdResult struct {
	Epd    string `json:"epd"`
	Id     string `json:"id,omitempty"`
	Player string `json:"player"`

	BestMoves  []string `json:"best_moves"`
	AvoidMoves []string `json:"avoid_moves"`

	Move    string `json:"move"`
	Score   int    `json:"score"`
	Success bool   `json:"success"`
	Nodes   int    `json:"nodes"`
}

func (r EpdResult) String() string {
	result := "failure"
	if r.Success {
		result = "success"
	}
	return fmt.Sprintf("%v %v for %v (%v)", result, r.Move, r.Player, r.Id)
}

func SearchEpd(runner Runner, epd string, params SearchParams) (EpdResult, Error) {
	result := EpdResult{Epd: epd}

	parsed, err := ParseEpd(epd)
	if !IsNil(err) {
		return result, err
	}
	result.Id = parsed.Id
	result.Player = parsed.Player.String()
	result.BestMoves = parsed.BestMoves
	result.AvoidMoves = parsed.AvoidMoves

	runner.Reset()
	err = runner.SetupPosition(Position{Fen: parsed.Fen})
	if !IsNil(err) {
		return result, err
	}

	move, score, nodes, err := runner.Search(params)
	if !IsNil(err) {
		return result, err
	}
	result.Nodes = nodes

	if move.IsEmpty() {
		return result, Errorf("no moves found for %v", epd)
	}

	result.Move = move.Value()
	result.Score = score.Value()
	result.Success = calculateSuccess(move.Value(), parsed.BestMoves, parsed.AvoidMoves)
	return result, NilError
}

type SuiteResult struct {
	Results []EpdResult `json:"results"`
	Solved  int         `json:"solved"`
	Nodes   int         `json:"nodes"`
}

func (s SuiteResult) Percent() float64 {
	if len(s.Results) == 0 {
		return 0
	}
	return 100 * float64(s.Solved) / float64(len(s.Results))
}

// RunSuite searches every epd in order, calling onResult after each one.
func RunSuite(runner Runner, epds []string, params SearchParams, onResult func(i int, result EpdResult)) (SuiteResult, Error) {
	suite := SuiteResult{Results: []EpdResult{}}
	for i, epd := range epds {
		result, err := SearchEpd(runner, epd, params)
		if !IsNil(err) {
			return suite, err
		}

		suite.Results = append(suite.Results, result)
		suite.Nodes += result.Nodes
		if result.Success {
			suite.Solved++
		}

		if onResult != nil {
			onResult(i, result)
		}
	}
	return suite, NilError
}
