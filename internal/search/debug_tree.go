package search

import (
	"fmt"
	"strings"

	. "github.com/bennyhinn18/chess/internal/helpers"
)

type debugSearchLine struct {
	DebugString string
	Depth       int
	Alpha       int
	Beta        int
	Score       Optional[int]
}

type debugSearchTree struct {
	CurrentDepth int
	Result       []debugSearchLine
}

// DebugString prints finished lines shallower than depth, most recent first.
func (s *debugSearchTree) DebugString(depth int) string {
	result := ""
	for i := range s.Result {
		line := s.Result[len(s.Result)-i-1]
		if line.Depth >= depth {
			continue
		}
		if line.Score.HasValue() {
			result += fmt.Sprintf("%v%v (%v %v) %v\n",
				strings.Repeat(" ", line.Depth),
				line.DebugString,
				ScoreString(line.Alpha),
				ScoreString(line.Beta),
				ScoreString(line.Score.Value()))
		}
	}
	return result
}

func (s *debugSearchTree) DepthPush(label string) {
	s.Result = append(s.Result, debugSearchLine{
		DebugString: "> " + label,
		Depth:       s.CurrentDepth,
	})
	s.CurrentDepth += 1
}

func (s *debugSearchTree) DepthPop(label string, result int) {
	s.CurrentDepth -= 1
	s.Result = append(s.Result, debugSearchLine{
		DebugString: "$ " + label,
		Depth:       s.CurrentDepth,
		Score:       Some(result),
	})
}

func playerString(isMaximizing bool) string {
	if isMaximizing {
		return "player"
	}
	return "enemy"
}

func (s *debugSearchTree) MovePush(move string, isMaximizing bool, alpha int, beta int) {
	s.Result = append(s.Result, debugSearchLine{
		DebugString: fmt.Sprintf("> %v (%v)", playerString(isMaximizing), move),
		Depth:       s.CurrentDepth,
		Alpha:       alpha,
		Beta:        beta,
	})
	s.CurrentDepth += 1
}

func (s *debugSearchTree) MovePop(move string, isMaximizing bool, alpha int, beta int, result int) {
	s.CurrentDepth -= 1
	s.Result = append(s.Result, debugSearchLine{
		DebugString: fmt.Sprintf("$ %v (%v)", playerString(isMaximizing), move),
		Depth:       s.CurrentDepth,
		Alpha:       alpha,
		Beta:        beta,
		Score:       Some(result),
	})
}
