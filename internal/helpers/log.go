package helpers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type _silentLogger struct {
}

func (l *_silentLogger) Println(v ...any)               {}
func (l *_silentLogger) Printf(format string, v ...any) {}
func (l *_silentLogger) Print(v ...any)                 {}

var SilentLogger = _silentLogger{}

type _funcLogger struct {
	f func(string)
}

func (l *_funcLogger) Println(v ...any) {
	l.f(fmt.Sprintln(v...))
}
func (l *_funcLogger) Printf(format string, v ...any) {
	l.f(fmt.Sprintf(format, v...))
}
func (l *_funcLogger) Print(v ...any) {
	l.f(fmt.Sprint(v...))
}

// FuncLogger forwards every formatted line to f.
func FuncLogger(f func(string)) Logger {
	return &_funcLogger{f}
}

// ZerologLogger adapts a zerolog.Logger to Logger. Every line is emitted as a
// single event at the configured level.
type ZerologLogger struct {
	Logger zerolog.Logger
	Level  zerolog.Level
}

var _ Logger = (*ZerologLogger)(nil)

func (l *ZerologLogger) emit(s string) {
	l.Logger.WithLevel(l.Level).Msg(strings.TrimRight(s, "\n"))
}

func (l *ZerologLogger) Println(v ...any) {
	l.emit(fmt.Sprintln(v...))
}
func (l *ZerologLogger) Printf(format string, v ...any) {
	l.emit(fmt.Sprintf(format, v...))
}
func (l *ZerologLogger) Print(v ...any) {
	l.emit(fmt.Sprint(v...))
}

// NewConsoleLogger returns a human readable zerolog logger writing to out.
func NewConsoleLogger(out io.Writer, component string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("component", component).Logger()
}
