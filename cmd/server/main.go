package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"

	. "github.com/bennyhinn18/chess/internal/helpers"
	"github.com/bennyhinn18/chess/internal/play"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type UpdateToWeb struct {
	play.State
	Selection     string   `json:"selection,omitempty"`
	PossibleMoves []string `json:"possibleMoves,omitempty"`
	Error         string   `json:"error,omitempty"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.Fen, ", ", u.LastMove, ", ", u.Status, ", ", u.Selection, ", ", u.PossibleMoves)
}

type MessageFromWeb struct {
	Move      *string `json:"move"`
	Undo      *bool   `json:"undo"`
	NewGame   *bool   `json:"newGame"`
	Mode      *string `json:"mode"`
	Depth     *int    `json:"depth"`
	Selection *string `json:"selection"`
}

func (u MessageFromWeb) String() string {
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	if u.Undo != nil {
		return fmt.Sprint("MessageFromWeb Undo: ", *u.Undo)
	}
	if u.NewGame != nil {
		return fmt.Sprint("MessageFromWeb NewGame: ", *u.NewGame)
	}
	if u.Mode != nil {
		return fmt.Sprint("MessageFromWeb Mode: ", *u.Mode)
	}
	if u.Depth != nil {
		return fmt.Sprint("MessageFromWeb Depth: ", *u.Depth)
	}
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	return "MessageFromWeb unknown"
}

type serverConfig struct {
	Port  int
	Depth int
	// Mode is what every new websocket session starts in.
	Mode play.Mode
}

// configFromArgs reads "port=N", "depth=N" and "mode=local|ai" (a bare number
// is a port), falling back to CHESS_PORT, CHESS_DEPTH and CHESS_MODE.
func configFromArgs(args []string) (serverConfig, Error) {
	config := serverConfig{
		Port:  EnvInt("CHESS_PORT", 8002),
		Depth: EnvInt("CHESS_DEPTH", play.DefaultDepth),
		Mode:  play.Local,
	}

	modeString := os.Getenv("CHESS_MODE")
	for _, arg := range args {
		if strings.HasPrefix(arg, "mode=") {
			modeString = strings.TrimPrefix(arg, "mode=")
		}
	}
	if modeString != "" {
		mode, err := play.ModeFromString(modeString)
		if !IsNil(err) {
			return config, err
		}
		config.Mode = mode
	}

	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			config.Port = int(parsed)
		}
	}

	port, err := ParseIntArg(args, "port")
	if !IsNil(err) {
		return config, err
	}
	config.Port = port.ValueOr(config.Port)

	depth, err := ParseIntArg(args, "depth")
	if !IsNil(err) {
		return config, err
	}
	config.Depth = depth.ValueOr(config.Depth)

	return config, NilError
}

type connection struct {
	logger  zerolog.Logger
	c       *websocket.Conn
	session *play.Session

	writeMutex sync.Mutex
}

func (conn *connection) send(update UpdateToWeb) {
	update.State = conn.session.State()
	conn.logger.Debug().Str("update", update.String()).Msg("sending")

	bytes, err := json.Marshal(update)
	if !IsNil(err) {
		conn.logger.Error().Err(err).Msg("update: json marshal")
		return
	}

	conn.writeMutex.Lock()
	defer conn.writeMutex.Unlock()
	err = conn.c.WriteMessage(websocket.TextMessage, bytes)
	if !IsNil(err) {
		conn.logger.Error().Err(err).Msg("websocket write")
	}
}

func (conn *connection) handleMessageFromWeb(bytes []byte) {
	var message MessageFromWeb
	var update UpdateToWeb

	err := json.Unmarshal(bytes, &message)
	if !IsNil(err) {
		conn.logger.Error().Err(err).Msg("handleMessageFromWeb: json unmarshal")
		update.Error = err.Error()
		conn.send(update)
		return
	}
	conn.logger.Info().Str("message", message.String()).Msg("received")

	if message.Move != nil {
		err := conn.session.Move(*message.Move)
		if !IsNil(err) {
			update.Error = err.Error()
		}
	} else if message.Undo != nil {
		conn.session.Undo()
	} else if message.NewGame != nil {
		conn.session.NewGame()
	} else if message.Mode != nil {
		mode, err := play.ModeFromString(*message.Mode)
		if !IsNil(err) {
			update.Error = err.Error()
		} else {
			conn.session.SetMode(mode)
		}
	} else if message.Depth != nil {
		conn.session.SetDepth(*message.Depth)
	} else if message.Selection != nil {
		update.Selection = *message.Selection
		moves, err := conn.session.MovesForSelection(*message.Selection)
		if !IsNil(err) {
			update.Error = err.Error()
		}
		update.PossibleMoves = moves
	}

	conn.send(update)
}

func (conn *connection) forwardEvents(done <-chan struct{}) {
	for {
		select {
		case event := <-conn.session.Events():
			conn.logger.Info().Str("event", event.String()).Msg("ai")
			conn.send(UpdateToWeb{})
		case <-done:
			return
		}
	}
}

func newRouter(logger zerolog.Logger, config serverConfig) *mux.Router {
	var upgrader = websocket.Upgrader{}

	var ws = func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if !IsNil(err) {
			logger.Error().Err(err).Msg("upgrade")
			return
		}
		defer c.Close()

		connLogger := logger.With().Str("remote", r.RemoteAddr).Logger()
		conn := &connection{
			logger: connLogger,
			c:      c,
			session: play.NewSession(play.SessionOptions{
				Mode:   config.Mode,
				Depth:  Some(config.Depth),
				Logger: Some[Logger](&ZerologLogger{Logger: connLogger}),
			}),
		}

		done := make(chan struct{})
		go conn.forwardEvents(done)
		defer func() {
			conn.session.Wait()
			close(done)
		}()

		conn.send(UpdateToWeb{})

		for {
			_, message, err := c.ReadMessage()
			if !IsNil(err) {
				connLogger.Info().Err(err).Msg("closing")
				break
			}
			conn.handleMessageFromWeb(message)
		}
	}

	var index = func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, RootDir()+"/static/index.html")
	}

	var healthz = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":    true,
			"depth": config.Depth,
			"mode":  config.Mode.String(),
		})
	}

	router := mux.NewRouter()
	router.HandleFunc("/ws", ws)
	router.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	router.PathPrefix("/static").Handler(
		http.StripPrefix("/static", http.FileServer(http.Dir(RootDir()+"/static"))))
	router.HandleFunc("/", index)
	return router
}

func main() {
	logger := NewConsoleLogger(os.Stderr, "server")

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("stack", string(debug.Stack())).Msg(fmt.Sprint(r))
		}
	}()

	config, err := configFromArgs(os.Args[1:])
	if !IsNil(err) {
		logger.Fatal().Err(err).Msg("config")
	}

	logger.Info().Int("port", config.Port).Int("depth", config.Depth).Msg("serving")

	err = Wrap(http.ListenAndServe(fmt.Sprintf(":%v", config.Port), newRouter(logger, config)))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
