package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/bennyhinn18/chess/internal/runner"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
)

type selfPlayConfig struct {
	Games         int
	DepthA        int
	DepthB        int
	OpeningPlies  int
	MaxPlies      int
	Seed          int
	ShowProgress  bool
	ProfileOutput bool
}

func configFromArgs(args []string) (selfPlayConfig, Error) {
	config := selfPlayConfig{
		Games:         10,
		DepthA:        1,
		DepthB:        2,
		OpeningPlies:  4,
		MaxPlies:      200,
		Seed:          1,
		ShowProgress:  true,
		ProfileOutput: Contains(args, "profile"),
	}

	for key, value := range map[string]*int{
		"games":  &config.Games,
		"depthA": &config.DepthA,
		"depthB": &config.DepthB,
		"plies":  &config.OpeningPlies,
		"max":    &config.MaxPlies,
		"seed":   &config.Seed,
	} {
		parsed, err := ParseIntArg(args, key)
		if !IsNil(err) {
			return config, err
		}
		*value = parsed.ValueOr(*value)
	}

	if config.Games <= 0 {
		return config, Errorf("games must be positive, got %v", config.Games)
	}
	return config, NilError
}

type Outcome int

const (
	WhiteWins Outcome = iota
	BlackWins
	Draw
)

func (o Outcome) String() string {
	return [3]string{"1-0", "0-1", "1/2-1/2"}[o]
}

type gameResult struct {
	Outcome Outcome
	Plies   int
	Nodes   int
	Pgn     string
}

// playGame plays one game between two engines. The first openingPlies moves
// are random so that repeated games differ.
func playGame(r *rand.Rand, white *runner.EngineRunner, black *runner.EngineRunner, openingPlies int, maxPlies int) (gameResult, Error) {
	result := gameResult{}

	g := game.NewGameState()
	for i := 0; i < openingPlies && !g.IsGameOver(); i++ {
		moves := g.LegalMoves()
		g.Apply(moves[r.Intn(len(moves))])
	}

	for _, engine := range []*runner.EngineRunner{white, black} {
		err := engine.SetupPosition(Position{Fen: game.StartFen})
		if !IsNil(err) {
			return result, err
		}
	}

	for g.Len() < maxPlies && !g.IsGameOver() {
		engine := white
		if g.Player() == Black {
			engine = black
		}

		err := engine.PerformMoves(game.StartFen, g.MoveHistory())
		if !IsNil(err) {
			return result, err
		}

		move, _, nodes, err := engine.Search(SearchParams{})
		if !IsNil(err) {
			return result, err
		}
		result.Nodes += nodes

		if move.IsEmpty() {
			break
		}
		err = g.PerformMoveFromString(move.Value())
		if !IsNil(err) {
			return result, err
		}
	}

	result.Plies = g.Len()
	result.Outcome = Draw
	if g.IsCheckmate() {
		if g.Player() == White {
			result.Outcome = BlackWins
		} else {
			result.Outcome = WhiteWins
		}
	}

	err := white.PerformMoves(game.StartFen, g.MoveHistory())
	if !IsNil(err) {
		return result, err
	}
	result.Pgn = white.PgnFromMoveHistory()
	return result, NilError
}

type tally struct {
	WinsA, Draws, WinsB int
	Nodes               int
}

func (t tally) String() string {
	return fmt.Sprintf("A %v / draw %v / B %v, %v nodes searched",
		t.WinsA, t.Draws, t.WinsB, humanize.Comma(int64(t.Nodes)))
}

func runMatch(config selfPlayConfig, logger Logger) (tally, Error) {
	r := rand.New(rand.NewSource(int64(config.Seed)))

	engineA := runner.NewEngineRunner(runner.RunnerOptions{Depth: Some(config.DepthA)})
	engineB := runner.NewEngineRunner(runner.RunnerOptions{Depth: Some(config.DepthB)})

	var progress Optional[ProgressBar]
	if config.ShowProgress {
		progress = Some(CreateProgressBar(config.Games, "games"))
		defer progress.Value().Close()
	}

	result := tally{}
	for i := 0; i < config.Games; i++ {
		// alternate colours every game
		white, black := engineA, engineB
		if i%2 == 1 {
			white, black = engineB, engineA
		}

		played, err := playGame(r, white, black, config.OpeningPlies, config.MaxPlies)
		if !IsNil(err) {
			return result, err
		}
		result.Nodes += played.Nodes

		switch {
		case played.Outcome == Draw:
			result.Draws++
		case (played.Outcome == WhiteWins) == (white == engineA):
			result.WinsA++
		default:
			result.WinsB++
		}

		logger.Printf("game %v: %v in %v plies, %v", i+1, played.Outcome, played.Plies, played.Pgn)

		if progress.HasValue() {
			progress.Value().Add(1)
		}
	}

	return result, NilError
}

func main() {
	args := os.Args[1:]

	config, err := configFromArgs(args)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if config.ProfileOutput {
		profilePath := RootDir() + "/data/CmdSelfPlay"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}

	logger := &ZerologLogger{Logger: NewConsoleLogger(os.Stderr, "selfplay")}
	logger.Printf("depth %v vs depth %v, %v games", config.DepthA, config.DepthB, config.Games)

	result, err := runMatch(config, logger)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(result)
}
