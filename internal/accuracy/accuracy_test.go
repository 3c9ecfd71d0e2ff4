package accuracy

import (
	"testing"

	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/bennyhinn18/chess/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindsTheRightCapture(t *testing.T) {
	epd := "r1bqk1r1/1p1p1n2/p1n2pN1/2p1b2Q/2P1Pp2/1PN5/PB4PP/R4RK1 w q - bm Rxf4; id \"ERET 001 - Relief\";"

	g, err := game.GamestateFromFenString(EpdToFen(epd))
	require.True(t, IsNil(err), err)

	bestMoves, err := MovesFromEpd("bm", epd, g)
	assert.True(t, IsNil(err), err)
	assert.Equal(t, []string{"f1f4"}, bestMoves)

	avoidMoves, err := MovesFromEpd("am", epd, g)
	assert.True(t, IsNil(err), err)
	assert.Empty(t, avoidMoves)
}

func TestEpdPawn(t *testing.T) {
	epd := "r1b2r1k/ppp2ppp/8/4p3/2BPQ3/P3P1K1/1B3PPP/n3q1NR w - - bm dxe5; id \"ERET 011 - Attacking Castle\";"

	parsed, err := ParseEpd(epd)
	require.True(t, IsNil(err), err)
	assert.Equal(t, []string{"d4e5"}, parsed.BestMoves)
	assert.Equal(t, "ERET 011 - Attacking Castle", parsed.Id)
	assert.Equal(t, White, parsed.Player)
	assert.Equal(t, "r1b2r1k/ppp2ppp/8/4p3/2BPQ3/P3P1K1/1B3PPP/n3q1NR w - -", parsed.Fen)
}

func TestDisambiguateKnight(t *testing.T) {
	epd := "2rq1rk1/pb1n1ppN/4p3/1pb5/3P1Pn1/P1N5/1PQ1B1PP/R1B2RK1 b - - bm Nde5; id \"ERET 007 - Bishop Pair\""

	parsed, err := ParseEpd(epd)
	require.True(t, IsNil(err), err)
	assert.Equal(t, []string{"d7e5"}, parsed.BestMoves)
	assert.Equal(t, Black, parsed.Player)
}

func TestMultipleMoves(t *testing.T) {
	parsed, err := ParseEpd("4k3/8/8/8/8/8/8/R3K2R w KQ - bm O-O, Kf1; am Ra8+;")
	require.True(t, IsNil(err), err)
	assert.ElementsMatch(t, []string{"e1g1", "e1f1"}, parsed.BestMoves)
	assert.Equal(t, []string{"a1a8"}, parsed.AvoidMoves)
}

func TestParseEpdErrors(t *testing.T) {
	_, err := ParseEpd("4k3/8/8/8/8/8/8/4K3 w - - id \"nothing\";")
	assert.False(t, IsNil(err))

	_, err = ParseEpd("4k3/8/8/8/8/8/8/4K3 w - - bm Qd1;")
	assert.False(t, IsNil(err))

	_, err = ParseEpd("4k3/8/8/8/8/8/8/R3K3 x - - bm Ra8+;")
	assert.False(t, IsNil(err))
}

func TestCalculateSuccess(t *testing.T) {
	assert.True(t, calculateSuccess("e2e4", []string{"e2e4"}, nil))
	assert.False(t, calculateSuccess("d2d4", []string{"e2e4"}, nil))
	assert.True(t, calculateSuccess("d2d4", nil, []string{"e2e4"}))
	assert.False(t, calculateSuccess("e2e4", nil, []string{"e2e4"}))
}

func TestMaterialSuite(t *testing.T) {
	epds, err := LoadEpd(RootDir() + "/internal/accuracy/testdata/material.epd")
	require.True(t, IsNil(err), err)
	require.Equal(t, 5, len(epds))

	r := runner.NewEngineRunner(runner.RunnerOptions{})
	seen := []string{}
	suite, err := RunSuite(r, epds, SearchParams{Depth: Some(1)}, func(i int, result EpdResult) {
		seen = append(seen, result.Id)
	})
	require.True(t, IsNil(err), err)

	assert.Equal(t, []string{"hanging queen", "back rank", "pawn takes queen", "no king walk", "only move"}, seen)
	for _, result := range suite.Results {
		assert.True(t, result.Success, result.String())
		assert.Contains(t, []string{"white", "black"}, result.Player)
	}
	assert.Equal(t, 5, suite.Solved)
	assert.Equal(t, 100.0, suite.Percent())
	assert.Greater(t, suite.Nodes, 0)
}

func TestLoadEpdMissingFile(t *testing.T) {
	_, err := LoadEpd(RootDir() + "/internal/accuracy/testdata/missing.epd")
	assert.False(t, IsNil(err))
}
