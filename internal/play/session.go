package play

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bennyhinn18/chess/internal/game"
	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/bennyhinn18/chess/internal/search"
)

type Mode int

const (
	Local Mode = iota
	VersusAI
)

func (m Mode) String() string {
	switch m {
	case Local:
		return "local"
	case VersusAI:
		return "ai"
	}
	return "unknown"
}

func ModeFromString(s string) (Mode, Error) {
	switch s {
	case "local":
		return Local, NilError
	case "ai":
		return VersusAI, NilError
	}
	return Local, Errorf("unknown mode %v", s)
}

const (
	MinDepth     = 1
	MaxDepth     = 4
	DefaultDepth = 2
)

// The AI always plays black.
const AIPlayer = Black

// Event is posted once per finished AI search.
type Event struct {
	Move  Optional[string]
	San   string
	Score int
	Stats search.Stats
}

func (e Event) String() string {
	if e.Move.IsEmpty() {
		return fmt.Sprint("ai found no move, ", e.Stats)
	}
	return fmt.Sprint("ai played ", e.San, " (", search.ScoreString(e.Score), "), ", e.Stats)
}

type SessionOptions struct {
	Mode   Mode
	Depth  Optional[int]
	Logger Optional[Logger]
	// AIDelay is slept before the AI starts searching.
	AIDelay time.Duration
}

// Session is one game between two humans or a human and the AI. All methods
// are safe to call from multiple goroutines. The AI searches a clone of the
// game on its own goroutine and its move is applied under the session lock,
// so the shared game is only ever touched by one goroutine at a time.
type Session struct {
	Logger Logger

	mu         sync.Mutex
	g          *game.GameState
	mode       Mode
	depth      int
	aiDelay    time.Duration
	thinking   bool
	generation int

	wg     sync.WaitGroup
	events chan Event
}

func NewSession(opts SessionOptions) *Session {
	s := &Session{
		g:       game.NewGameState(),
		mode:    opts.Mode,
		depth:   ClampInt(opts.Depth.ValueOr(DefaultDepth), MinDepth, MaxDepth),
		aiDelay: opts.AIDelay,
		events:  make(chan Event, 16),
	}
	if opts.Logger.HasValue() {
		s.Logger = opts.Logger.Value()
	} else {
		s.Logger = &SilentLogger
	}
	return s
}

// Events delivers AI results. Events are dropped if nobody keeps up.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Wait blocks until no AI search is running.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches modes. Switching to VersusAI with black to move hands the
// turn to the AI.
func (s *Session) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.maybeStartAI()
}

func (s *Session) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}

// SetDepth clamps depth into [MinDepth, MaxDepth] and returns what was kept.
func (s *Session) SetDepth(depth int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depth = ClampInt(depth, MinDepth, MaxDepth)
	return s.depth
}

func (s *Session) IsThinking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thinking
}

// Move plays a human move given in uci form. Only a running search blocks
// it: after an undo hands black back to the player, black is moved by hand.
func (s *Session) Move(uci string) Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.thinking {
		return Errorf("waiting for the ai to move")
	}

	err := s.g.PerformMoveFromString(uci)
	if !IsNil(err) {
		return err
	}
	s.maybeStartAI()
	return NilError
}

// MovesForSelection lists legal moves for the piece on square.
func (s *Session) MovesForSelection(square string) ([]string, Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileRank, err := FileRankFromString(square)
	if !IsNil(err) {
		return nil, Errorf("failed to parse selection %w", err)
	}
	moves := MapSlice(s.g.LegalMoves(), func(m game.Move) string {
		return m.String()
	})
	return FilterSlice(moves, func(m string) bool {
		return strings.HasPrefix(m, fileRank.String())
	}), NilError
}

// Undo takes back the last move. A search in flight is discarded.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.g.Len() == 0 {
		return false
	}
	s.g.Undo()
	s.generation++
	return true
}

func (s *Session) NewGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.g = game.NewGameState()
	s.generation++
}

func (s *Session) maybeStartAI() {
	if s.mode != VersusAI || s.thinking {
		return
	}
	if s.g.Player() != AIPlayer || s.g.IsGameOver() {
		return
	}

	s.thinking = true
	clone := s.g.Clone()
	depth := s.depth
	generation := s.generation

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runAI(clone, depth, generation)
	}()
}

func (s *Session) runAI(g *game.GameState, depth int, generation int) {
	if s.aiDelay > 0 {
		time.Sleep(s.aiDelay)
	}

	searcher := search.NewSearcher(s.Logger, g, search.DefaultSearchOptions)
	move, score := searcher.FindBestMove(depth)

	event := Event{Move: Empty[string](), Score: score, Stats: searcher.Stats}

	s.mu.Lock()
	s.thinking = false
	if generation != s.generation {
		s.mu.Unlock()
		s.Logger.Println("dropping stale ai result")
		return
	}
	if move.HasValue() {
		event.Move = Some(move.Value().String())
		event.San = s.g.San(move.Value())
		s.g.Apply(move.Value())
	}
	s.mu.Unlock()

	s.Logger.Println(event)

	select {
	case s.events <- event:
	default:
		s.Logger.Println("event channel full, dropping", event)
	}
}

func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return status(s.g)
}

func status(g *game.GameState) string {
	if g.IsCheckmate() {
		return fmt.Sprintf("Checkmate — %v wins", g.Player().Other().Title())
	} else if g.IsStalemate() {
		return "Stalemate — Draw"
	} else if g.IsInsufficientMaterial() {
		return "Draw — insufficient material"
	} else if g.IsSeventyFiveMoves() {
		return "Draw — seventy-five moves"
	} else if g.IsFivefoldRepetition() {
		return "Draw — fivefold repetition"
	} else if g.IsCheck() {
		return "Check"
	}
	return fmt.Sprintf("%v to move", g.Player().Title())
}

// MoveList renders the game as numbered san pairs, one move number per line.
func (s *Session) MoveList() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return moveList(s.g.SanHistory())
}

func moveList(san []string) string {
	lines := []string{}
	for i := 0; i < len(san); i += 2 {
		line := fmt.Sprintf("%v. %v", i/2+1, san[i])
		if i+1 < len(san) {
			line += " " + san[i+1]
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// State is a consistent snapshot of the session.
type State struct {
	Fen      string `json:"fen"`
	Status   string `json:"status"`
	MoveList string `json:"moveList"`
	LastMove string `json:"lastMove"`
	Player   string `json:"player"`
	Mode     string `json:"mode"`
	Depth    int    `json:"depth"`
	Thinking bool   `json:"thinking"`
	GameOver bool   `json:"gameOver"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	lastMove := ""
	if m := s.g.LastMove(); m.HasValue() {
		lastMove = m.Value().String()
	}
	return State{
		Fen:      s.g.FenString(),
		Status:   status(s.g),
		MoveList: moveList(s.g.SanHistory()),
		LastMove: lastMove,
		Player:   s.g.Player().String(),
		Mode:     s.mode.String(),
		Depth:    s.depth,
		Thinking: s.thinking,
		GameOver: s.g.IsGameOver(),
	}
}
