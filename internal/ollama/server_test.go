package ollama

import (
	"context"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	pErrors "github.com/zhubert/scribe/internal/errors"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestServer_StartFailure(t *testing.T) {
	s := NewServer("scribe-definitely-not-a-binary")

	err := s.Start()
	if err == nil {
		t.Fatal("Start() should fail for a missing binary")
	}
	if !pErrors.IsUnavailable(err) {
		t.Errorf("error = %v, want an unavailable error", err)
	}
	if s.Running() {
		t.Error("server should not be running after a failed start")
	}
	// Stop on a never-started server is a no-op.
	s.Stop()
}

func TestServer_StartStop(t *testing.T) {
	requireBinary(t, "sleep")
	s := NewServer("sleep", "30")

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.Running() {
		t.Fatal("server should be running after Start")
	}
	// A second Start is a no-op.
	if err := s.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}

	start := time.Now()
	s.Stop()
	if s.Running() {
		t.Error("server should not be running after Stop")
	}
	if elapsed := time.Since(start); elapsed > stopGrace+time.Second {
		t.Errorf("Stop took %v", elapsed)
	}

	// Stop is idempotent.
	s.Stop()
}

func TestServer_ExitsOnItsOwn(t *testing.T) {
	requireBinary(t, "sh")
	s := NewServer("sh", "-c", "echo ready; echo oops 1>&2; exit 3")

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit")
	}

	if s.Running() {
		t.Error("Running() should be false after exit")
	}
	if s.ExitErr() == nil {
		t.Error("ExitErr() should report the non-zero exit")
	}
	s.Stop()
}

func TestEnsureServer_AlreadyRunning(t *testing.T) {
	c := newFake(t, &fakeOllama{models: []string{"m"}})
	s := NewServer("scribe-definitely-not-a-binary")

	started, err := EnsureServer(context.Background(), c, s, time.Second)
	if err != nil || started {
		t.Errorf("EnsureServer() = %v, %v; want false, nil", started, err)
	}
}

func TestEnsureServer_StartsWhenUnreachable(t *testing.T) {
	requireBinary(t, "sleep")
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := NewServer("sleep", "30")
	defer s.Stop()

	started, err := EnsureServer(context.Background(), c, s, 500*time.Millisecond)
	if err != nil {
		t.Fatalf("EnsureServer() error = %v", err)
	}
	if !started || !s.Running() {
		t.Error("EnsureServer should start the server when nothing answers")
	}
}

func TestEnsureServer_StartFailure(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, nil)
	if err != nil {
		t.Fatal(err)
	}

	started, err := EnsureServer(context.Background(), c, NewServer("scribe-definitely-not-a-binary"), 500*time.Millisecond)
	if started || err == nil {
		t.Errorf("EnsureServer() = %v, %v; want false and an error", started, err)
	}
}
