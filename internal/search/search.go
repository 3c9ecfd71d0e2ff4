package search

import (
	"strings"

	"github.com/bennyhinn18/chess/internal/evaluation"
	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
)

// Evaluator scores a position from player's point of view.
type Evaluator func(b game.Board, player Player) int

func MaterialEvaluator(b game.Board, player Player) int {
	return evaluation.Evaluate(b, player)
}

type SearcherOptions struct {
	Evaluator       Evaluator
	debugSearchTree *debugSearchTree
}

var DefaultSearchOptions = SearcherOptions{
	Evaluator:       MaterialEvaluator,
	debugSearchTree: nil,
}

var AllSearchOptions = []string{
	"debugSearchTree",
}

func SearcherOptionsFromArgs(args ...string) (SearcherOptions, Error) {
	options := DefaultSearchOptions

	for _, arg := range args {
		if strings.HasPrefix(arg, "debugSearchTree") {
			options.debugSearchTree = &debugSearchTree{}
		} else {
			return options, Errorf("unknown option: %s", arg)
		}
	}

	return options, NilError
}

// Searcher runs a fixed depth alpha-beta search over a borrowed position. The
// position is mutated while searching and always restored before returning.
type Searcher struct {
	Logger Logger

	Board            game.Board
	MaximizingPlayer Player

	options SearcherOptions

	Stats Stats
}

func NewSearcher(logger Logger, position game.Board, options SearcherOptions) *Searcher {
	if options.Evaluator == nil {
		options.Evaluator = MaterialEvaluator
	}
	return &Searcher{
		Logger:           logger,
		Board:            position,
		MaximizingPlayer: position.Player(),
		options:          options,
	}
}

func (s *Searcher) EvaluatePosition() int {
	s.Stats.Evaluations++
	return s.options.Evaluator(s.Board, s.MaximizingPlayer)
}

// AlphaBeta returns the minimax value of the position to the given depth,
// pruning lines that can't affect the result. Horizon and game over are the
// same leaf: both are scored by the static evaluator.
func (s *Searcher) AlphaBeta(depth int, alpha int, beta int, maximizing bool) int {
	s.Stats.Nodes++

	if depth <= 0 || s.Board.IsGameOver() {
		return s.EvaluatePosition()
	}

	moves := s.Board.LegalMoves()

	if maximizing {
		best := -Inf
		for _, move := range moves {
			score := s.evaluateMove(move, depth, alpha, beta, false)
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				s.Stats.Cutoffs++
				break
			}
		}
		return best
	}

	best := Inf
	for _, move := range moves {
		score := s.evaluateMove(move, depth, alpha, beta, true)
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			s.Stats.Cutoffs++
			break
		}
	}
	return best
}

func (s *Searcher) evaluateMove(move game.Move, depth int, alpha int, beta int, childMaximizing bool) (returnScore int) {
	if s.options.debugSearchTree != nil {
		s.options.debugSearchTree.MovePush(move.String(), !childMaximizing, alpha, beta)
		defer func() {
			s.options.debugSearchTree.MovePop(move.String(), !childMaximizing, alpha, beta, returnScore)
		}()
	}

	s.Board.Apply(move)
	defer s.Board.Undo()

	returnScore = s.AlphaBeta(depth-1, alpha, beta, childMaximizing)
	return returnScore
}

// Minimax is the unpruned search. It visits every node to the given depth and
// must always agree with AlphaBeta(depth, -Inf, Inf, maximizing).
func (s *Searcher) Minimax(depth int, maximizing bool) int {
	s.Stats.Nodes++

	if depth <= 0 || s.Board.IsGameOver() {
		return s.EvaluatePosition()
	}

	best := Inf
	if maximizing {
		best = -Inf
	}
	for _, move := range s.Board.LegalMoves() {
		score := func() int {
			s.Board.Apply(move)
			defer s.Board.Undo()
			return s.Minimax(depth-1, !maximizing)
		}()
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}
	return best
}

// FindBestMove picks the root move with the strictly greatest score for the
// side to move, keeping the first one on ties. It returns no move when the
// position has no legal moves. Depth 0 still looks one ply ahead.
func (s *Searcher) FindBestMove(depth int) (Optional[game.Move], int) {
	bestMove := Empty[game.Move]()
	bestScore := -Inf

	if s.options.debugSearchTree != nil {
		s.options.debugSearchTree.DepthPush(depthLabel(depth))
		defer func() {
			s.options.debugSearchTree.DepthPop(depthLabel(depth), bestScore)
		}()
	}

	for _, move := range s.Board.LegalMoves() {
		score := s.evaluateMove(move, depth, -Inf, Inf, false)
		if score > bestScore {
			bestScore = score
			bestMove = Some(move)
		}
	}

	if bestMove.HasValue() {
		s.Logger.Println("evaluated",
			"to depth", depth,
			"-", s.Stats,
			"- best move", bestMove.Value().String(),
			"- score", ScoreString(bestScore))
	} else {
		s.Logger.Println("no legal moves at depth", depth)
	}

	return bestMove, bestScore
}

// DebugString renders the recorded search tree down to depth, or "" when the
// tree isn't being recorded.
func (s *Searcher) DebugString(depth int) string {
	if s.options.debugSearchTree == nil {
		return ""
	}
	return s.options.debugSearchTree.DebugString(depth)
}
