package evaluation

import (
	. "github.com/bennyhinn18/chess/internal/helpers"
)

// PieceValues are in centipawns. The king is never captured so its weight
// always cancels out between the two sides.
var PieceValues = [6]int{
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  900,
	King:   20000,
}

// MaxMaterial is the most material one side can legally own: a king, nine
// queens and the remaining minor and major pieces.
var MaxMaterial = PieceValues[King] +
	9*PieceValues[Queen] +
	2*PieceValues[Rook] +
	2*PieceValues[Bishop] +
	2*PieceValues[Knight]

type PieceCounter interface {
	PieceCounts() PieceCounts
}

func evaluatePieces(counts *PieceCounts, player Player) int {
	result := 0
	for _, pieceType := range AllPieceTypes {
		result += PieceValues[pieceType] * counts.Count(player, pieceType)
	}
	return result
}

// EvaluatePieces is the material owned by player.
func EvaluatePieces(b PieceCounter, player Player) int {
	counts := b.PieceCounts()
	return evaluatePieces(&counts, player)
}

// Evaluate is the material balance from player's point of view.
func Evaluate(b PieceCounter, player Player) int {
	counts := b.PieceCounts()
	return evaluatePieces(&counts, player) - evaluatePieces(&counts, player.Other())
}
