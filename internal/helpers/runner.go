package helpers

// Position is a start FEN plus the UCI moves played from it.
type Position struct {
	Fen   string
	Moves []string
}

type SearchParams struct {
	Depth Optional[int]
}

type Runner interface {
	PerformMoveFromString(s string) Error
	SetupPosition(position Position) Error
	PerformMoves(startPos string, moves []string) Error
	MovesForSelection(s string) ([]string, Error)
	Rewind(num int) Error
	Reset()
	// Search returns the best move, its score for the side to move and the
	// number of nodes visited.
	Search(SearchParams) (Optional[string], Optional[int], int, Error)
	IsNew() bool
}
