package transport

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Remote commands understood by the device.
const (
	cmdGetData = "GET_DATA"
	cmdUp      = "CMD_UP"
	cmdDown    = "CMD_DOWN"
	cmdSelect  = "CMD_SELECT"
)

// clientReadTimeout bounds how long a connected client may stay silent.
const clientReadTimeout = time.Second

// Handler reacts to remote client commands. GenerateData runs a full
// generation cycle and blocks for its duration; the menu commands mirror the
// physical buttons.
type Handler interface {
	GenerateData() (Payload, error)
	Up()
	Down()
	Select()
}

// Server accepts companion connections, one client at a time.
type Server struct {
	handler Handler
	log     *zap.Logger
	lis     net.Listener
}

// NewServer creates a Server. A nil logger disables logging.
func NewServer(handler Handler, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{handler: handler, log: log}
}

// Listen binds the listener. Serve must be called afterwards.
func (s *Server) Listen(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("transport listen: %w", err)
	}
	s.lis = lis
	s.log.Info("transport listening", zap.String("addr", lis.Addr().String()))
	return nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	if s.lis == nil {
		return nil
	}
	return s.lis.Addr()
}

// Serve runs the accept loop until Close. Connection-level failures are
// logged and the loop continues; they never take the device down.
func (s *Server) Serve() error {
	if s.lis == nil {
		return errors.New("transport: Serve before Listen")
	}
	for {
		conn, err := s.lis.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("transport accept: %w", err)
		}
		if err := s.serveClient(conn); err != nil {
			s.log.Warn("client session failed", zap.Error(err))
		}
	}
}

func (s *Server) serveClient(conn net.Conn) error {
	defer conn.Close()
	s.log.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

	if err := conn.SetReadDeadline(time.Now().Add(clientReadTimeout)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read command: %w", err)
	}
	cmd := strings.TrimRight(line, "\r\n")

	switch {
	case strings.HasPrefix(cmd, cmdGetData):
		payload, err := s.handler.GenerateData()
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		if _, err := conn.Write([]byte(payload.Encode())); err != nil {
			return fmt.Errorf("send payload: %w", err)
		}
		s.log.Info("payload sent",
			zap.Int("length", payload.Length),
			zap.Int("complexity", payload.Complexity))
	case strings.HasPrefix(cmd, cmdUp):
		s.handler.Up()
	case strings.HasPrefix(cmd, cmdDown):
		s.handler.Down()
	case strings.HasPrefix(cmd, cmdSelect):
		s.handler.Select()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// Close shuts the listener down; a running Serve returns nil.
func (s *Server) Close() error {
	if s.lis == nil {
		return nil
	}
	return s.lis.Close()
}

// SendOnce waits for a single client on addr, pushes message, and closes both
// the connection and the listener.
func SendOnce(addr, message string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("transport listen: %w", err)
	}
	defer lis.Close()

	conn, err := lis.Accept()
	if err != nil {
		return fmt.Errorf("transport accept: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(message)); err != nil {
		return fmt.Errorf("transport send: %w", err)
	}
	return nil
}
