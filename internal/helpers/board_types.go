package helpers

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

// Title returns "White" or "Black".
func (p Player) Title() string {
	return [2]string{"White", "Black"}[p]
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b", "black":
		return Black, NilError
	case "w", "white":
		return White, NilError
	default:
		return White, Errorf("invalid player %v", c)
	}
}

type PieceType uint

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	InvalidPiece
)

var AllPieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

func (p PieceType) String() string {
	return [7]string{
		"p", "n", "b", "r", "q", "k", "?",
	}[p]
}

func (p PieceType) IsValid() bool {
	return p <= King
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}
func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %v", string(c))
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %v", string(c))
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

// Index follows the a1 = 0, h8 = 63 layout.
func (v FileRank) Index() int {
	return int(v.Rank)*8 + int(v.File)
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Errorf("invalid location %v: %v", s, Join(fileErr, rankErr))
	}

	return FileRank{file, rank}, NilError
}

// PieceCounts holds the number of pieces of each type for each player.
type PieceCounts [2][6]int

func (c *PieceCounts) Count(player Player, pieceType PieceType) int {
	return c[player][pieceType]
}

func (c *PieceCounts) Total(player Player) int {
	total := 0
	for _, n := range c[player] {
		total += n
	}
	return total
}
