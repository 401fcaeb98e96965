package clipboard

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/zhubert/scribe/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

type memBackend struct {
	initErr error
	data    []byte
	inits   int
}

func (b *memBackend) init() error           { b.inits++; return b.initErr }
func (b *memBackend) readText() []byte      { return b.data }
func (b *memBackend) writeText(data []byte) { b.data = data }

func useBackend(t *testing.T, b backend) {
	t.Helper()
	prev := current
	current = b
	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() {
		current = prev
		initOnce = sync.Once{}
		initErr = nil
	})
}

func TestWriteReadText(t *testing.T) {
	b := &memBackend{}
	useBackend(t, b)

	if err := WriteText("Debug Analysis\n1. missing return"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	got, err := ReadText()
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != "Debug Analysis\n1. missing return" {
		t.Errorf("ReadText() = %q", got)
	}
	if b.inits != 1 {
		t.Errorf("init called %d times, want 1", b.inits)
	}
}

func TestReadText_Empty(t *testing.T) {
	useBackend(t, &memBackend{})

	got, err := ReadText()
	if err != nil || got != "" {
		t.Errorf("ReadText() = %q, %v", got, err)
	}
}

func TestInitFailure(t *testing.T) {
	useBackend(t, &memBackend{initErr: errors.New("no display")})

	if err := WriteText("x"); err == nil {
		t.Error("WriteText should fail when the clipboard cannot initialize")
	}
	if _, err := ReadText(); err == nil {
		t.Error("ReadText should fail when the clipboard cannot initialize")
	}
}
