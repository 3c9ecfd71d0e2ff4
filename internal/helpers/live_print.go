package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
	"golang.org/x/term"
)

// LiveLogger prints log lines above a footer that is redrawn in place, eg a
// running tally at the bottom of the terminal.
type LiveLogger struct {
	out     io.Writer
	width   int
	footers []string

	lock sync.Mutex
}

var _ Logger = &LiveLogger{}

func NewLiveLogger(out io.Writer) *LiveLogger {
	l := &LiveLogger{out: out, width: termWidth(), footers: []string{}}
	l.PrintLive(Empty[string](), "", l.FooterString())
	return l
}

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 100
	}
	return width
}

type _footerLogger struct {
	logger *LiveLogger
	i      int
}

// NewFooterLogger returns a Logger that replaces footer i on every line.
func NewFooterLogger(logger *LiveLogger, i int) Logger {
	return &_footerLogger{logger: logger, i: i}
}

func (l *_footerLogger) Println(v ...any) {
	l.logger.SetFooter(fmt.Sprintln(v...), l.i)
}
func (l *_footerLogger) Printf(format string, v ...any) {
	l.logger.SetFooter(fmt.Sprintf(format, v...), l.i)
}
func (l *_footerLogger) Print(v ...any) {
	l.logger.SetFooter(fmt.Sprint(v...), l.i)
}

func (l *LiveLogger) FooterString() string {
	return strings.Join(l.footers, "\n")
}

func (l *LiveLogger) Println(v ...interface{}) {
	l.Print(fmt.Sprintln(v...))
}

func (l *LiveLogger) Printf(format string, v ...interface{}) {
	l.Print(fmt.Sprintf(format, v...))
}

func (l *LiveLogger) Print(xs ...interface{}) {
	footer := l.FooterString()
	l.PrintLive(Some(fmt.Sprint(xs...)), footer, footer)
}

func runeCountIgnoringAnsi(s string) int {
	return utf8.RuneCountInString(stripansi.Strip(s))
}

func wrapLine(s string, width int) string {
	if runeCountIgnoringAnsi(s) < width {
		return s
	}

	words := strings.Split(s, " ")
	lines := []string{}
	line := []string{}
	for _, word := range words {
		joinedLine := strings.Join(line, " ")
		if runeCountIgnoringAnsi(joinedLine)+runeCountIgnoringAnsi(word)+1 > width && len(line) != 0 {
			lines = append(lines, joinedLine)
			line = []string{word}
		} else {
			line = append(line, word)
		}
	}
	lines = append(lines, strings.Join(line, " "))
	return strings.Join(
		MapSlice(lines, func(s string) string { return strings.TrimSpace(s) }), "\n")
}

func (l *LiveLogger) SetFooter(s string, index int) {
	s = wrapLine(strings.TrimSpace(s), l.width)

	prevFooterString := l.FooterString()

	for i := len(l.footers) - 1; i < index; i++ {
		l.footers = append(l.footers, "")
	}
	l.footers[index] = s

	l.PrintLive(Empty[string](), prevFooterString, l.FooterString())
}

// PrintLive moves the cursor above the previous footer, clears to the end of
// the screen, prints output and then redraws the footer.
func (l *LiveLogger) PrintLive(output Optional[string], previousFooter string, footer string) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if previousFooter != "" {
		for i := 0; i < len(strings.Split(previousFooter, "\n")); i++ {
			fmt.Fprint(l.out, "\033[A")
		}
	}

	fmt.Fprint(l.out, "\033[J")

	if output.HasValue() {
		fmt.Fprint(l.out, output.Value())
	}

	if footer != "" {
		fmt.Fprintln(l.out, footer)
	}
}
