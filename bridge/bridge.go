// Package bridge runs the command channel between injected page chrome and
// the shell. The chrome has no host API to call, so the shell listens on a
// loopback WebSocket and the injected script connects back to it. Each text
// frame carries one JSON request; each request gets one JSON response.
package bridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/onyx-dot-app/desktop-core/logger"
	"github.com/onyx-dot-app/desktop-core/window"
)

// WriteTimeout bounds a response write so an unresponsive page cannot
// wedge a connection handler.
const WriteTimeout = 10 * time.Second

// Commands is the operation surface the bridge dispatches onto.
type Commands interface {
	GetServerURL() string
	SetServerURL(raw string) (string, error)
	ConfigPath() (string, error)
	OpenConfigFile() error
	OpenConfigDirectory() error
	NavigateTo(label, path string) error
	ReloadPage(label string)
	GoBack(label string)
	GoForward(label string)
	NewWindow() (string, error)
	ResetConfig() error
	StartDragWindow(label string) error
}

// Request is one command invocation from injected chrome. Window names the
// window the chrome runs in; an empty value targets the main window.
type Request struct {
	ID      int64           `json:"id"`
	Command string          `json:"command"`
	Window  string          `json:"window,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response answers one Request by ID. Exactly one of Result and Error is
// meaningful.
type Response struct {
	ID     int64  `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server accepts WebSocket connections from injected chrome and dispatches
// their requests. It binds to an ephemeral loopback port; nothing off the
// machine can reach it.
type Server struct {
	commands Commands
	listener net.Listener
	httpSrv  *http.Server
	upgrader websocket.Upgrader

	closed   bool
	closedMu sync.RWMutex
	wg       sync.WaitGroup
	log      *slog.Logger
}

// NewServer creates a server listening on an ephemeral loopback port.
func NewServer(commands Commands) (*Server, error) {
	log := logger.WithComponent("bridge")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("bridge listen: %w", err)
	}

	s := &Server{
		commands: commands,
		listener: listener,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The chrome runs on the remote app's origin, so origin
			// checking cannot distinguish it; the loopback bind is the
			// access control here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpSrv = &http.Server{Handler: s}

	log.Info("listening", "addr", listener.Addr().String())
	return s, nil
}

// Addr returns the ws:// URL injected chrome should connect to.
func (s *Server) Addr() string {
	return "ws://" + s.listener.Addr().String()
}

// Start launches the accept loop in a goroutine.
func (s *Server) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Server) run() {
	defer s.wg.Done()

	err := s.httpSrv.Serve(s.listener)

	s.closedMu.RLock()
	closed := s.closed
	s.closedMu.RUnlock()
	if closed {
		s.log.Info("server closed, stopping accept loop")
		return
	}
	if err != nil && err != http.ErrServerClosed {
		s.log.Error("serve error", "error", err)
	}
}

// ServeHTTP upgrades the connection and runs its read loop.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "error", err)
		return
	}
	s.handleConnection(conn)
}

func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()
	s.log.Debug("connection accepted", "remote", conn.RemoteAddr().String())

	for {
		s.closedMu.RLock()
		closed := s.closed
		s.closedMu.RUnlock()
		if closed {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("read error", "error", err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			s.log.Error("malformed request", "error", err)
			continue
		}

		resp := s.dispatch(req)

		conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Error("write error", "error", err)
			return
		}
	}
}

// dispatch runs one request against the command surface. Unknown commands
// and per-command failures come back as Response.Error; the connection
// stays usable either way.
func (s *Server) dispatch(req Request) Response {
	label := req.Window
	if label == "" {
		label = window.MainLabel
	}

	resp := Response{ID: req.ID}

	switch req.Command {
	case "get_server_url":
		resp.Result = s.commands.GetServerURL()
	case "set_server_url":
		var args struct {
			URL string `json:"url"`
		}
		if err := unmarshalArgs(req.Args, &args); err != nil {
			resp.Error = err.Error()
			break
		}
		stored, err := s.commands.SetServerURL(args.URL)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Result = stored
	case "get_config_path":
		path, err := s.commands.ConfigPath()
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Result = path
	case "open_config_file":
		if err := s.commands.OpenConfigFile(); err != nil {
			resp.Error = err.Error()
		}
	case "open_config_directory":
		if err := s.commands.OpenConfigDirectory(); err != nil {
			resp.Error = err.Error()
		}
	case "navigate_to":
		var args struct {
			Path string `json:"path"`
		}
		if err := unmarshalArgs(req.Args, &args); err != nil {
			resp.Error = err.Error()
			break
		}
		if err := s.commands.NavigateTo(label, args.Path); err != nil {
			resp.Error = err.Error()
		}
	case "reload_page":
		s.commands.ReloadPage(label)
	case "go_back":
		s.commands.GoBack(label)
	case "go_forward":
		s.commands.GoForward(label)
	case "new_window":
		created, err := s.commands.NewWindow()
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Result = created
	case "reset_config":
		if err := s.commands.ResetConfig(); err != nil {
			resp.Error = err.Error()
		}
	case "start_drag_window":
		if err := s.commands.StartDragWindow(label); err != nil {
			resp.Error = err.Error()
		}
	default:
		s.log.Warn("unknown command", "command", req.Command)
		resp.Error = "unknown command: " + req.Command
	}

	return resp
}

func unmarshalArgs(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("malformed args: %w", err)
	}
	return nil
}

// Close shuts the server down and waits for the accept loop to exit. Live
// connections are closed by the HTTP server teardown.
func (s *Server) Close() error {
	s.log.Info("closing bridge server")

	s.closedMu.Lock()
	s.closed = true
	s.closedMu.Unlock()

	err := s.httpSrv.Close()
	s.wg.Wait()
	return err
}
