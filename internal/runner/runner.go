package runner

import (
	"fmt"
	"strings"

	"github.com/bennyhinn18/chess/internal/evaluation"
	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/bennyhinn18/chess/internal/search"
)

const DefaultDepth = 3

// EngineRunner drives a single game for the uci loop and the self-play tool.
// It tracks the fen the game started from so later "position" commands can
// be applied incrementally.
type EngineRunner struct {
	Logger Logger

	g       *game.GameState
	options search.SearcherOptions
	depth   int

	StartFen string
	// LastStats describes the most recent Search call.
	LastStats search.Stats
}

var _ Runner = (*EngineRunner)(nil)

type RunnerOptions struct {
	SearchOptions search.SearcherOptions
	Depth         Optional[int]
	Logger        Optional[Logger]
}

func NewEngineRunner(opts RunnerOptions) *EngineRunner {
	r := &EngineRunner{
		options: opts.SearchOptions,
		depth:   opts.Depth.ValueOr(DefaultDepth),
	}
	if opts.Logger.HasValue() {
		r.Logger = opts.Logger.Value()
	} else {
		r.Logger = &SilentLogger
	}
	return r
}

func (r *EngineRunner) Reset() {
	r.g = nil
	r.StartFen = ""
	r.LastStats = search.Stats{}
}

func (r *EngineRunner) IsNew() bool {
	return r.g == nil
}

func (r *EngineRunner) SetDepth(depth int) {
	r.depth = depth
}

func (r *EngineRunner) Depth() int {
	return r.depth
}

// Game exposes the underlying game. Callers must not keep moves applied on it
// across runner calls.
func (r *EngineRunner) Game() *game.GameState {
	return r.g
}

func (r *EngineRunner) Rewind(num int) Error {
	if r.g == nil {
		return Errorf("position not setup")
	}
	for i := 0; i < MinInt(num, r.g.Len()); i++ {
		r.g.Undo()
	}
	return NilError
}

func (r *EngineRunner) PerformMoveFromString(s string) Error {
	if r.g == nil {
		return Errorf("position not setup")
	}
	err := r.g.PerformMoveFromString(s)
	if !IsNil(err) {
		return Errorf("PerformMoveFromString: %w", err)
	}
	return NilError
}

func firstIndexNotMatching[A any, B any](a []A, b []B, matches func(A, B) bool) int {
	for i := 0; i < MinInt(len(a), len(b)); i++ {
		if !matches(a[i], b[i]) {
			return i
		}
	}
	return MinInt(len(a), len(b))
}

// PerformMoves brings the game to startPos followed by moves, reusing any
// prefix that has already been played and rewinding whatever diverges.
func (r *EngineRunner) PerformMoves(startPos string, moves []string) Error {
	if r.StartFen != startPos {
		return Errorf("positions don't match: %v != %v", r.StartFen, startPos)
	}

	history := r.g.MoveHistory()
	startIndex := firstIndexNotMatching(history, moves, func(a string, b string) bool {
		return a == b
	})

	err := r.Rewind(len(history) - startIndex)
	if !IsNil(err) {
		return err
	}

	for i := startIndex; i < len(moves); i++ {
		err := r.PerformMoveFromString(moves[i])
		if !IsNil(err) {
			return err
		}
	}

	return NilError
}

func (r *EngineRunner) SetupPosition(position Position) Error {
	if !r.IsNew() {
		r.Reset()
	}

	g, err := game.GamestateFromFenString(position.Fen)
	if !IsNil(err) {
		return Errorf("couldn't create game from %v, %w", position, err)
	}
	r.g = g
	r.StartFen = position.Fen

	for _, m := range position.Moves {
		err := r.PerformMoveFromString(m)
		if !IsNil(err) {
			return err
		}
	}

	return NilError
}

// MovesForSelection lists the legal moves starting on the given square.
func (r *EngineRunner) MovesForSelection(selection string) ([]string, Error) {
	if r.g == nil {
		return nil, Errorf("position not setup")
	}
	fileRank, err := FileRankFromString(selection)
	if !IsNil(err) {
		return nil, Errorf("failed to parse selection %w", err)
	}

	moves := MapSlice(r.g.LegalMoves(), func(m game.Move) string {
		return m.String()
	})
	return FilterSlice(moves, func(m string) bool {
		return strings.HasPrefix(m, fileRank.String())
	}), NilError
}

func (r *EngineRunner) FenString() string {
	return r.g.FenString()
}

func (r *EngineRunner) MoveHistory() []string {
	return r.g.MoveHistory()
}

func (r *EngineRunner) PgnFromMoveHistory() string {
	result := ""
	fullMove := 1
	halfMove := 0
	for _, move := range r.g.SanHistory() {
		if halfMove == 0 {
			result += fmt.Sprintf("%v. ", fullMove)
		}

		result += fmt.Sprintf("%v ", move)

		halfMove += 1
		if halfMove == 2 {
			halfMove = 0
			fullMove += 1
		}
	}
	return strings.TrimSpace(result)
}

func (r *EngineRunner) Player() Player {
	return r.g.Player()
}

func (r *EngineRunner) IsGameOver() bool {
	return r.g.IsGameOver()
}

func (r *EngineRunner) Evaluate(player Player) int {
	return evaluation.Evaluate(r.g, player)
}

func (r *EngineRunner) Search(params SearchParams) (Optional[string], Optional[int], int, Error) {
	if r.g == nil {
		return Empty[string](), Empty[int](), 0, Errorf("position not setup")
	}

	depth := params.Depth.ValueOr(r.depth)
	searcher := search.NewSearcher(r.Logger, r.g, r.options)
	move, score := searcher.FindBestMove(depth)
	r.LastStats = searcher.Stats

	if move.IsEmpty() {
		return Empty[string](), Empty[int](), searcher.Stats.Nodes, NilError
	}

	return Some(move.Value().String()), Some(score), searcher.Stats.Nodes, NilError
}
