package search

import (
	"math/rand"
	"testing"

	"github.com/bennyhinn18/chess/internal/evaluation"
	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFens = []string{
	game.StartFen,
	"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
	"4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1",
	"4q1k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1",
	"8/8/4k3/2b5/8/3K4/8/5BR1 b - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
}

func gameFromFen(t *testing.T, fen string) *game.GameState {
	g, err := game.GamestateFromFenString(fen)
	require.True(t, IsNil(err), err)
	return g
}

func newSearcher(t *testing.T, fen string) (*game.GameState, *Searcher) {
	g := gameFromFen(t, fen)
	return g, NewSearcher(&SilentLogger, g, DefaultSearchOptions)
}

func bestMoveString(t *testing.T, fen string, depth int) (string, int) {
	_, searcher := newSearcher(t, fen)
	move, score := searcher.FindBestMove(depth)
	require.True(t, move.HasValue(), fen)
	return move.Value().String(), score
}

func TestDepthZeroIsEvaluation(t *testing.T) {
	for _, fen := range testFens {
		g, searcher := newSearcher(t, fen)
		expected := evaluation.Evaluate(g, g.Player())

		assert.Equal(t, expected, searcher.AlphaBeta(0, -Inf, Inf, true), fen)
		assert.Equal(t, expected, searcher.AlphaBeta(0, -Inf, Inf, false), fen)
		assert.Equal(t, 2, searcher.Stats.Evaluations)
	}
}

func TestSearchLeavesPositionUnchanged(t *testing.T) {
	totalCutoffs := 0
	for _, fen := range testFens {
		for depth := 1; depth <= 2; depth++ {
			g, searcher := newSearcher(t, fen)
			before := g.FenString()

			searcher.AlphaBeta(depth, -Inf, Inf, true)
			assert.Equal(t, before, g.FenString(), fen)
			assert.Equal(t, 0, g.Len(), fen)

			searcher.FindBestMove(depth)
			assert.Equal(t, before, g.FenString(), fen)
			assert.Equal(t, 0, g.Len(), fen)

			totalCutoffs += searcher.Stats.Cutoffs
		}
	}
	assert.Greater(t, totalCutoffs, 0)
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for _, fen := range testFens {
		for depth := 1; depth <= 2; depth++ {
			for _, maximizing := range []bool{true, false} {
				_, pruned := newSearcher(t, fen)
				_, full := newSearcher(t, fen)

				assert.Equal(t,
					full.Minimax(depth, maximizing),
					pruned.AlphaBeta(depth, -Inf, Inf, maximizing),
					fen)
				assert.LessOrEqual(t, pruned.Stats.Nodes, full.Stats.Nodes)
			}
		}
	}
}

func TestAlphaBetaMatchesMinimaxOnRandomTrees(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	for i := 0; i < 300; i++ {
		root := randomTree(r, 6)
		for depth := 0; depth <= 6; depth++ {
			for _, maximizing := range []bool{true, false} {
				prunedPosition := newTreePosition(root)
				pruned := NewSearcher(&SilentLogger, prunedPosition, treeOptions)
				full := NewSearcher(&SilentLogger, newTreePosition(root), treeOptions)

				expected := full.Minimax(depth, maximizing)
				actual := pruned.AlphaBeta(depth, -Inf, Inf, maximizing)
				require.Equal(t, expected, actual, "tree %d depth %d", i, depth)

				assert.LessOrEqual(t, pruned.Stats.Nodes, full.Stats.Nodes)
				assert.Equal(t, 1, len(prunedPosition.path))
				assert.Equal(t, prunedPosition.applies, prunedPosition.undos)
			}
		}
	}
}

func TestTextbookCutoffs(t *testing.T) {
	root := node(0,
		node(0, leaves(3, 12, 8)...),
		node(0, leaves(2, 4, 6)...),
		node(0, leaves(14, 5, 2)...),
	)
	position := newTreePosition(root)
	searcher := NewSearcher(&SilentLogger, position, treeOptions)

	assert.Equal(t, 3, searcher.AlphaBeta(2, -Inf, Inf, true))
	assert.Equal(t, 7, searcher.Stats.Evaluations)
	assert.Equal(t, 2, searcher.Stats.Cutoffs)
	assert.Equal(t, 1, len(position.path))
	assert.Equal(t, position.applies, position.undos)
}

func TestCutoffOnEqualBound(t *testing.T) {
	root := node(0,
		node(0, leaves(3)...),
		node(0, leaves(3, 9)...),
	)
	searcher := NewSearcher(&SilentLogger, newTreePosition(root), treeOptions)

	assert.Equal(t, 3, searcher.AlphaBeta(2, -Inf, Inf, true))
	// the 9 is never looked at: 3 <= 3 already cuts
	assert.Equal(t, 2, searcher.Stats.Evaluations)
	assert.Equal(t, 1, searcher.Stats.Cutoffs)
}

func TestRootTiesKeepFirstMove(t *testing.T) {
	root := node(0, leaves(5, 7, 7, 2)...)
	searcher := NewSearcher(&SilentLogger, newTreePosition(root), treeOptions)

	move, score := searcher.FindBestMove(1)
	assert.True(t, move.HasValue())
	assert.Equal(t, "1", move.Value().String())
	assert.Equal(t, 7, score)
}

func TestRootDepthZeroLooksOnePly(t *testing.T) {
	root := node(0,
		node(1, leaves(-50)...),
		node(4, leaves(-50)...),
		node(2, leaves(-50)...),
	)
	searcher := NewSearcher(&SilentLogger, newTreePosition(root), treeOptions)

	move, score := searcher.FindBestMove(0)
	assert.Equal(t, "1", move.Value().String())
	assert.Equal(t, 4, score)
}

func TestNoMovesInTree(t *testing.T) {
	searcher := NewSearcher(&SilentLogger, newTreePosition(leaf(3)), treeOptions)
	move, score := searcher.FindBestMove(3)
	assert.True(t, move.IsEmpty())
	assert.Equal(t, -Inf, score)
}

func TestStartingPositionDepthOne(t *testing.T) {
	g := game.NewGameState()
	legal := MapSlice(g.LegalMoves(), func(m game.Move) string { return m.String() })

	searcher := NewSearcher(&SilentLogger, g, DefaultSearchOptions)
	move, score := searcher.FindBestMove(1)
	assert.True(t, move.HasValue())
	assert.Contains(t, legal, move.Value().String())
	assert.Equal(t, 0, score)

	again, _ := NewSearcher(&SilentLogger, g, DefaultSearchOptions).FindBestMove(1)
	assert.Equal(t, move.Value().String(), again.Value().String())
}

func TestSingleLegalMove(t *testing.T) {
	fen := "7k/8/8/8/8/8/8/6RK b - - 0 1"
	require.Equal(t, 1, len(gameFromFen(t, fen).LegalMoves()))

	for depth := 1; depth <= 3; depth++ {
		move, _ := bestMoveString(t, fen, depth)
		assert.Equal(t, "h8h7", move)
	}
}

func TestCapturesHangingQueen(t *testing.T) {
	fen := "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1"
	for depth := 1; depth <= 2; depth++ {
		move, score := bestMoveString(t, fen, depth)
		assert.Equal(t, "e4d5", move)
		assert.Equal(t, 100, score)
	}
}

func TestBlackMaximizesItsOwnMaterial(t *testing.T) {
	move, score := bestMoveString(t, "4k3/8/8/8/4p3/3Q4/8/4K3 b - - 0 1", 1)
	assert.Equal(t, "e4d3", move)
	assert.Equal(t, 100, score)
}

func TestCheckmatedPositionHasNoMove(t *testing.T) {
	fen := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	for depth := 0; depth <= 3; depth++ {
		_, searcher := newSearcher(t, fen)
		move, _ := searcher.FindBestMove(depth)
		assert.True(t, move.IsEmpty())
	}
}

// The evaluator only counts material, so the mate is found because it also
// wins the queen and its score is the material balance, not a mate score.
func TestMateInOne(t *testing.T) {
	fen := "4q1k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1"
	for depth := 1; depth <= 3; depth++ {
		move, score := bestMoveString(t, fen, depth)
		assert.Equal(t, "e1e8", move)
		assert.Equal(t, 500, score)
	}

	g := gameFromFen(t, fen)
	require.True(t, IsNil(g.PerformMoveFromString("e1e8")))
	assert.True(t, g.IsCheckmate())
}

func TestScoresStayBelowInf(t *testing.T) {
	assert.Less(t, evaluation.MaxMaterial, Inf)
	assert.Less(t, 2*evaluation.MaxMaterial, Inf)

	for _, fen := range testFens {
		_, score := bestMoveString(t, fen, 1)
		assert.Less(t, score, Inf)
		assert.Greater(t, score, -Inf)
	}
}

func TestSearcherOptionsFromArgs(t *testing.T) {
	options, err := SearcherOptionsFromArgs("debugSearchTree")
	assert.True(t, IsNil(err), err)
	assert.NotNil(t, options.debugSearchTree)
	assert.NotNil(t, options.Evaluator)

	_, err = SearcherOptionsFromArgs("quiescence")
	assert.False(t, IsNil(err))
}

func TestDebugSearchTree(t *testing.T) {
	options, err := SearcherOptionsFromArgs("debugSearchTree")
	require.True(t, IsNil(err), err)

	g := gameFromFen(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	searcher := NewSearcher(&SilentLogger, g, options)
	move, _ := searcher.FindBestMove(1)
	require.True(t, move.HasValue())

	tree := searcher.DebugString(2)
	assert.Contains(t, tree, "$ depth 1", spew.Sdump(options.debugSearchTree.Result))
	assert.Contains(t, tree, "$ player (e4d5) (-inf +inf) 100")
	assert.Equal(t, 0, options.debugSearchTree.CurrentDepth)
}
