package game

import (
	"strconv"
	"strings"

	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/notnil/chess"
)

// Move is an opaque transition between two positions. Its String() is the UCI
// form, eg "e2e4" or "e7e8q".
type Move interface {
	String() string
}

// Board is everything the searcher needs from a rules engine. Apply and
// Undo mutate the position in place; every Apply must be paired with exactly
// one Undo.
type Board interface {
	Player() Player
	LegalMoves() []Move
	Apply(move Move)
	Undo()
	IsCheckmate() bool
	IsStalemate() bool
	IsInsufficientMaterial() bool
	IsGameOver() bool
	PieceCounts() PieceCounts
}

type frame struct {
	position      *chess.Position
	move          *chess.Move
	key           string
	halfMoveClock int
	// check is only computed for frames without a move
	check bool
}

// GameState is a chess game backed by immutable notnil/chess positions. Moves
// push a new position onto the stack and undo pops it, so undoing restores
// the exact previous state.
type GameState struct {
	frames []frame
}

var _ Board = (*GameState)(nil)

func newFrame(pos *chess.Position, move *chess.Move) frame {
	fields := strings.Fields(pos.String())
	f := frame{position: pos, move: move}
	if move == nil {
		f.check = inCheck(pos)
	}
	if len(fields) >= 4 {
		f.key = strings.Join(fields[:4], " ")
	}
	if len(fields) >= 5 {
		if v, err := strconv.Atoi(fields[4]); err == nil {
			f.halfMoveClock = v
		}
	}
	return f
}

func NewGameState() *GameState {
	return &GameState{frames: []frame{newFrame(chess.StartingPosition(), nil)}}
}

func (g *GameState) current() *frame {
	return &g.frames[len(g.frames)-1]
}

// Clone returns an independent game sharing the (immutable) position history.
func (g *GameState) Clone() *GameState {
	frames := make([]frame, len(g.frames))
	copy(frames, g.frames)
	return &GameState{frames: frames}
}

// Len is the number of moves applied since the game was created.
func (g *GameState) Len() int {
	return len(g.frames) - 1
}

func (g *GameState) Player() Player {
	if g.current().position.Turn() == chess.Black {
		return Black
	}
	return White
}

func (g *GameState) LegalMoves() []Move {
	valid := g.current().position.ValidMoves()
	moves := make([]Move, len(valid))
	for i, m := range valid {
		moves[i] = m
	}
	return moves
}

func toChessMove(move Move) *chess.Move {
	m, ok := move.(*chess.Move)
	if !ok {
		panic(Errorf("move %v was not produced by this engine", move))
	}
	return m
}

func (g *GameState) Apply(move Move) {
	m := toChessMove(move)
	next := g.current().position.Update(m)
	g.frames = append(g.frames, newFrame(next, m))
}

func (g *GameState) Undo() {
	if len(g.frames) == 1 {
		panic(Errorf("undo without a matching apply"))
	}
	g.frames = g.frames[:len(g.frames)-1]
}

func (g *GameState) MoveFromString(s string) (Move, Error) {
	move := FindInSlice(g.current().position.ValidMoves(), func(m *chess.Move) bool {
		return m.String() == s
	})
	if move.IsEmpty() {
		return nil, Errorf("illegal move %v in %v", s, g.FenString())
	}
	return move.Value(), NilError
}

func normalizeSan(s string) string {
	s = strings.TrimRight(s, "+#!?")
	return strings.ReplaceAll(s, "=", "")
}

// MoveFromSan finds the legal move written as san, eg "Nf3" or "exd8=Q+".
// Check markers and annotations are ignored and captures may omit the "x".
func (g *GameState) MoveFromSan(san string) (Move, Error) {
	pos := g.current().position
	target := normalizeSan(san)
	for _, m := range pos.ValidMoves() {
		encoded := normalizeSan(chess.AlgebraicNotation{}.Encode(pos, m))
		if encoded == target || strings.ReplaceAll(encoded, "x", "") == target {
			return m, NilError
		}
	}
	return nil, Errorf("illegal move %v in %v", san, g.FenString())
}

func (g *GameState) PerformMoveFromString(s string) Error {
	m, err := g.MoveFromString(s)
	if !IsNil(err) {
		return err
	}
	g.Apply(m)
	return NilError
}

func (g *GameState) LastMove() Optional[Move] {
	if m := g.current().move; m != nil {
		return Some[Move](m)
	}
	return Empty[Move]()
}

// MoveHistory returns the UCI strings of every applied move, oldest first.
func (g *GameState) MoveHistory() []string {
	result := []string{}
	for _, f := range g.frames[1:] {
		result = append(result, f.move.String())
	}
	return result
}

// SanHistory returns every applied move in standard algebraic notation.
func (g *GameState) SanHistory() []string {
	result := []string{}
	for i := 1; i < len(g.frames); i++ {
		result = append(result, chess.AlgebraicNotation{}.Encode(g.frames[i-1].position, g.frames[i].move))
	}
	return result
}

func (g *GameState) San(move Move) string {
	return chess.AlgebraicNotation{}.Encode(g.current().position, toChessMove(move))
}

func (g *GameState) IsCheckmate() bool {
	return g.current().position.Status() == chess.Checkmate
}

func (g *GameState) IsStalemate() bool {
	return g.current().position.Status() == chess.Stalemate
}

// IsCheck reports whether the side to move is in check.
func (g *GameState) IsCheck() bool {
	c := g.current()
	if c.move != nil {
		return c.move.HasTag(chess.Check)
	}
	return c.check
}

func (g *GameState) IsSeventyFiveMoves() bool {
	return g.current().halfMoveClock >= 150 && !g.IsCheckmate()
}

// IsFivefoldRepetition only looks back to the last capture or pawn move since
// earlier positions can't recur.
func (g *GameState) IsFivefoldRepetition() bool {
	c := g.current()
	if c.halfMoveClock < 16 {
		return false
	}
	count := 0
	for i := len(g.frames) - 1; i >= 0 && i >= len(g.frames)-1-c.halfMoveClock; i -= 2 {
		if g.frames[i].key == c.key {
			count++
			if count >= 5 {
				return true
			}
		}
	}
	return false
}

func (g *GameState) IsDraw() bool {
	return g.IsStalemate() ||
		g.IsInsufficientMaterial() ||
		g.IsSeventyFiveMoves() ||
		g.IsFivefoldRepetition()
}

func (g *GameState) IsGameOver() bool {
	if g.current().position.Status() != chess.NoMethod {
		return true
	}
	return g.IsInsufficientMaterial() ||
		g.IsSeventyFiveMoves() ||
		g.IsFivefoldRepetition()
}

var _pieceTypes = map[chess.PieceType]PieceType{
	chess.Pawn:   Pawn,
	chess.Knight: Knight,
	chess.Bishop: Bishop,
	chess.Rook:   Rook,
	chess.Queen:  Queen,
	chess.King:   King,
}

func playerForColor(c chess.Color) Player {
	if c == chess.Black {
		return Black
	}
	return White
}

func (g *GameState) forEachPiece(f func(index int, player Player, pieceType PieceType)) {
	board := g.current().position.Board()
	for i := 0; i < 64; i++ {
		piece := board.Piece(chess.Square(i))
		if piece == chess.NoPiece {
			continue
		}
		f(i, playerForColor(piece.Color()), _pieceTypes[piece.Type()])
	}
}

func (g *GameState) PieceCounts() PieceCounts {
	counts := PieceCounts{}
	g.forEachPiece(func(index int, player Player, pieceType PieceType) {
		counts[player][pieceType]++
	})
	return counts
}

func (g *GameState) Draw() string {
	return g.current().position.Board().Draw()
}
