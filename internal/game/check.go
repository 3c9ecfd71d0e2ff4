package game

import (
	"github.com/notnil/chess"
)

type offset struct{ df, dr int }

var (
	_knightOffsets   = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	_kingOffsets     = []offset{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	_rookDirections  = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	_bishopDirection = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func squareAt(file int, rank int) (chess.Square, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoSquare, false
	}
	return chess.Square(rank*8 + file), true
}

// attacked reports whether any piece of color attacks sq.
func attacked(squares map[chess.Square]chess.Piece, sq chess.Square, color chess.Color) bool {
	file, rank := int(sq.File()), int(sq.Rank())

	isPiece := func(s chess.Square, types ...chess.PieceType) bool {
		p, ok := squares[s]
		if !ok || p.Color() != color {
			return false
		}
		for _, t := range types {
			if p.Type() == t {
				return true
			}
		}
		return false
	}

	for _, o := range _knightOffsets {
		if s, ok := squareAt(file+o.df, rank+o.dr); ok && isPiece(s, chess.Knight) {
			return true
		}
	}
	for _, o := range _kingOffsets {
		if s, ok := squareAt(file+o.df, rank+o.dr); ok && isPiece(s, chess.King) {
			return true
		}
	}

	// pawns attack towards the opponent, so look back the other way
	pawnRank := rank - 1
	if color == chess.Black {
		pawnRank = rank + 1
	}
	for _, df := range []int{-1, 1} {
		if s, ok := squareAt(file+df, pawnRank); ok && isPiece(s, chess.Pawn) {
			return true
		}
	}

	slide := func(directions []offset, types ...chess.PieceType) bool {
		for _, d := range directions {
			for f, r := file+d.df, rank+d.dr; ; f, r = f+d.df, r+d.dr {
				s, ok := squareAt(f, r)
				if !ok {
					break
				}
				if _, occupied := squares[s]; occupied {
					if isPiece(s, types...) {
						return true
					}
					break
				}
			}
		}
		return false
	}
	return slide(_rookDirections, chess.Rook, chess.Queen) ||
		slide(_bishopDirection, chess.Bishop, chess.Queen)
}

// inCheck reports whether the side to move in pos is in check.
func inCheck(pos *chess.Position) bool {
	squares := pos.Board().SquareMap()
	turn := pos.Turn()
	for sq, p := range squares {
		if p.Type() == chess.King && p.Color() == turn {
			return attacked(squares, sq, turn.Other())
		}
	}
	return false
}
