package game

import (
	. "github.com/bennyhinn18/chess/internal/helpers"
)

type materialSummary struct {
	counts          PieceCounts
	lightBishops    int
	darkBishops     int
	occupiedByColor [2]int
}

func (g *GameState) materialSummary() materialSummary {
	s := materialSummary{}
	g.forEachPiece(func(index int, player Player, pieceType PieceType) {
		s.counts[player][pieceType]++
		s.occupiedByColor[player]++
		if pieceType == Bishop {
			// a1 is dark
			if (index/8+index%8)%2 == 0 {
				s.darkBishops++
			} else {
				s.lightBishops++
			}
		}
	})
	return s
}

func (s *materialSummary) hasInsufficientMaterial(player Player) bool {
	c := &s.counts
	if c.Count(player, Pawn)+c.Count(player, Rook)+c.Count(player, Queen) > 0 {
		return false
	}

	if c.Count(player, Knight) > 0 {
		// a lone knight can only mate if the enemy has blockers of its own
		enemy := player.Other()
		enemyBlockers := s.occupiedByColor[enemy] - c.Count(enemy, King) - c.Count(enemy, Queen)
		return s.occupiedByColor[player] <= 2 && enemyBlockers == 0
	}

	if c.Count(player, Bishop) > 0 {
		sameColor := s.lightBishops == 0 || s.darkBishops == 0
		noPawns := c.Count(White, Pawn)+c.Count(Black, Pawn) == 0
		noKnights := c.Count(White, Knight)+c.Count(Black, Knight) == 0
		return sameColor && noPawns && noKnights
	}

	return true
}

// IsInsufficientMaterial is true when neither side can possibly deliver mate.
func (g *GameState) IsInsufficientMaterial() bool {
	s := g.materialSummary()
	return s.hasInsufficientMaterial(White) && s.hasInsufficientMaterial(Black)
}
