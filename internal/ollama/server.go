package ollama

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	pErrors "github.com/zhubert/scribe/internal/errors"
	"github.com/zhubert/scribe/internal/logger"
)

// stopGrace is how long Stop waits after interrupting before it kills.
const stopGrace = 2 * time.Second

// Server supervises an inference server process started by scribe.
type Server struct {
	binary string
	args   []string

	mu       sync.Mutex
	cmd      *exec.Cmd
	running  bool
	waitDone chan struct{}
	exitErr  error
	wg       sync.WaitGroup
	log      *slog.Logger
}

// NewServer prepares a supervisor for `binary serve`. Extra args replace
// the default "serve" argument.
func NewServer(binary string, args ...string) *Server {
	if len(args) == 0 {
		args = []string{"serve"}
	}
	return &Server{
		binary: binary,
		args:   args,
		log:    logger.WithComponent("ollama-server"),
	}
}

// Start launches the process. Its stdout and stderr are copied line by line
// into the log. Calling Start on a running server is a no-op.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	cmd := exec.Command(s.binary, s.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return pErrors.ServerStartFailed(s.binary, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		return pErrors.ServerStartFailed(s.binary, err)
	}

	if err := cmd.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		s.log.Warn("failed to start server", "binary", s.binary, "error", err)
		return pErrors.ServerStartFailed(s.binary, err)
	}

	s.cmd = cmd
	s.running = true
	s.exitErr = nil
	s.waitDone = make(chan struct{})
	s.log.Info("server started", "binary", s.binary, "pid", cmd.Process.Pid)

	// Both pipes must be drained before cmd.Wait, which closes them.
	var pipes sync.WaitGroup
	pipes.Add(2)
	s.wg.Add(3)
	go func() {
		defer s.wg.Done()
		defer pipes.Done()
		s.drain("stdout", stdout)
	}()
	go func() {
		defer s.wg.Done()
		defer pipes.Done()
		s.drain("stderr", stderr)
	}()
	go func() {
		defer s.wg.Done()
		pipes.Wait()
		s.monitorExit(cmd, s.waitDone)
	}()

	return nil
}

func (s *Server) drain(stream string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s.log.Debug("server output", "stream", stream, "line", scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		s.log.Debug("error reading server output", "stream", stream, "error", err)
	}
}

// monitorExit is the only caller of cmd.Wait.
func (s *Server) monitorExit(cmd *exec.Cmd, waitDone chan struct{}) {
	err := cmd.Wait()

	s.mu.Lock()
	s.running = false
	s.exitErr = err
	s.mu.Unlock()

	s.log.Info("server exited", "error", err)
	close(waitDone)
}

// Stop interrupts the process and kills it if it has not exited within two
// seconds. Safe to call more than once.
func (s *Server) Stop() {
	s.mu.Lock()
	cmd := s.cmd
	waitDone := s.waitDone
	running := s.running
	s.mu.Unlock()

	if cmd == nil || cmd.Process == nil || waitDone == nil {
		return
	}

	if running {
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			s.log.Debug("interrupt failed, killing", "error", err)
			cmd.Process.Kill()
		}
		select {
		case <-waitDone:
			s.log.Debug("server exited gracefully")
		case <-time.After(stopGrace):
			s.log.Debug("force killing server")
			cmd.Process.Kill()
			<-waitDone
		}
	}

	s.wg.Wait()

	s.mu.Lock()
	s.cmd = nil
	s.mu.Unlock()
}

// Running reports whether the process is alive.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Done returns a channel closed when the current process exits, or nil if
// nothing was started.
func (s *Server) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitDone
}

// ExitErr returns the error from the last exit, if any.
func (s *Server) ExitErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitErr
}

// EnsureServer starts server when no inference server answers at client's
// address within timeout. It reports whether a process was started.
func EnsureServer(ctx context.Context, client *Client, server *Server, timeout time.Duration) (bool, error) {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := client.ListModels(probeCtx); err == nil {
		return false, nil
	} else if !pErrors.IsUnavailable(err) {
		// Something answered; it is not ours to replace.
		return false, nil
	}

	if err := server.Start(); err != nil {
		return false, err
	}
	return true, nil
}
