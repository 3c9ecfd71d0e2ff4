package search

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Inf bounds every score. Material can never reach it (see
// evaluation.MaxMaterial) so it is safe as the initial alpha/beta window.
const Inf = 999999

func ScoreString(score int) string {
	if score >= Inf {
		return "+inf"
	}
	if score <= -Inf {
		return "-inf"
	}
	return fmt.Sprint(score)
}

type Stats struct {
	Nodes       int
	Evaluations int
	Cutoffs     int
}

func (s Stats) String() string {
	return fmt.Sprint(
		"nodes ", humanize.Comma(int64(s.Nodes)),
		", evals ", humanize.Comma(int64(s.Evaluations)),
		", cutoffs ", humanize.Comma(int64(s.Cutoffs)))
}

func depthLabel(depth int) string {
	return fmt.Sprintf("depth %d", depth)
}
