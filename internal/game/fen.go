package game

import (
	"strings"
	"unicode"

	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/notnil/chess"
)

const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// normalizeFen fills in the optional trailing fields so "board player" and
// "board player castling en-passant" strings are accepted.
func normalizeFen(s string) (string, Error) {
	ss := strings.Fields(s)
	switch len(ss) {
	case 6:
	case 4:
		ss = append(ss, "0", "1")
	case 2:
		ss = append(ss, "-", "-", "0", "1")
	default:
		return "", Errorf("wrong num %v of fields in str '%v'", len(ss), s)
	}
	return strings.Join(ss, " "), NilError
}

func GamestateFromFenString(s string) (*GameState, Error) {
	fen, err := normalizeFen(s)
	if !IsNil(err) {
		return nil, err
	}

	opt, fenErr := chess.FEN(fen)
	if fenErr != nil {
		return nil, Errorf("invalid fen '%v': %w", s, fenErr)
	}

	pos := chess.NewGame(opt).Position()
	return &GameState{frames: []frame{newFrame(pos, nil)}}, NilError
}

func (g *GameState) FenString() string {
	return g.current().position.String()
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, s)
}

// MirrorFen flips the board vertically and swaps the colour of every piece
// and the side to move. Material evaluations of the two positions are
// negations of each other.
func MirrorFen(s string) (string, Error) {
	fen, err := normalizeFen(s)
	if !IsNil(err) {
		return "", err
	}
	ss := strings.Fields(fen)

	ranks := strings.Split(ss[0], "/")
	if len(ranks) != 8 {
		return "", Errorf("expected 8 ranks in '%v'", s)
	}
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	ss[0] = swapCase(strings.Join(ranks, "/"))

	if ss[1] == "w" {
		ss[1] = "b"
	} else {
		ss[1] = "w"
	}

	if ss[2] != "-" {
		castling := swapCase(ss[2])
		ordered := ""
		for _, c := range "KQkq" {
			if strings.ContainsRune(castling, c) {
				ordered += string(c)
			}
		}
		ss[2] = ordered
	}

	if ss[3] != "-" {
		fr, err := FileRankFromString(ss[3])
		if !IsNil(err) {
			return "", err
		}
		fr.Rank = 7 - fr.Rank
		ss[3] = fr.String()
	}

	return strings.Join(ss, " "), NilError
}

// Mirror returns a fresh game at the colour-reversed current position.
func (g *GameState) Mirror() (*GameState, Error) {
	fen, err := MirrorFen(g.FenString())
	if !IsNil(err) {
		return nil, err
	}
	return GamestateFromFenString(fen)
}
