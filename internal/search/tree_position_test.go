package search

import (
	"math/rand"
	"strconv"

	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
)

// treePosition is a hand built game tree. Leaves are terminal and every node
// carries a value from white's point of view.
type treeNode struct {
	value    int
	children []*treeNode
}

type treeMove int

func (m treeMove) String() string {
	return strconv.Itoa(int(m))
}

type treePosition struct {
	path    []*treeNode
	applies int
	undos   int
}

var _ game.Board = (*treePosition)(nil)

func newTreePosition(root *treeNode) *treePosition {
	return &treePosition{path: []*treeNode{root}}
}

func (p *treePosition) current() *treeNode {
	return p.path[len(p.path)-1]
}

func (p *treePosition) Player() Player {
	if len(p.path)%2 == 1 {
		return White
	}
	return Black
}

func (p *treePosition) LegalMoves() []game.Move {
	moves := []game.Move{}
	for i := range p.current().children {
		moves = append(moves, treeMove(i))
	}
	return moves
}

func (p *treePosition) Apply(move game.Move) {
	p.applies++
	p.path = append(p.path, p.current().children[int(move.(treeMove))])
}

func (p *treePosition) Undo() {
	p.undos++
	p.path = p.path[:len(p.path)-1]
}

func (p *treePosition) IsCheckmate() bool            { return false }
func (p *treePosition) IsStalemate() bool            { return false }
func (p *treePosition) IsInsufficientMaterial() bool { return false }
func (p *treePosition) PieceCounts() PieceCounts     { return PieceCounts{} }

func (p *treePosition) IsGameOver() bool {
	return len(p.current().children) == 0
}

func treeEvaluator(b game.Board, player Player) int {
	v := b.(*treePosition).current().value
	if player == Black {
		return -v
	}
	return v
}

var treeOptions = SearcherOptions{Evaluator: treeEvaluator}

func leaf(v int) *treeNode {
	return &treeNode{value: v}
}

func node(v int, children ...*treeNode) *treeNode {
	return &treeNode{value: v, children: children}
}

func leaves(vs ...int) []*treeNode {
	return MapSlice(vs, leaf)
}

// randomTree keeps values in a narrow range so equal scores, and therefore
// cutoffs on equality, are common.
func randomTree(r *rand.Rand, depth int) *treeNode {
	n := leaf(r.Intn(21) - 10)
	if depth == 0 {
		return n
	}
	branching := r.Intn(5)
	for i := 0; i < branching; i++ {
		n.children = append(n.children, randomTree(r, depth-1))
	}
	return n
}
