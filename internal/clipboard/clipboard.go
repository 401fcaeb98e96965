// Package clipboard copies text to and from the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/scribe/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// backend is the system clipboard; tests replace it.
type backend interface {
	init() error
	readText() []byte
	writeText(data []byte)
}

type systemBackend struct{}

func (systemBackend) init() error           { return clipboard.Init() }
func (systemBackend) readText() []byte      { return clipboard.Read(clipboard.FmtText) }
func (systemBackend) writeText(data []byte) { clipboard.Write(clipboard.FmtText, data) }

var current backend = systemBackend{}

// Init initializes the clipboard. It is safe to call multiple times; the
// first result is remembered.
func Init() error {
	initOnce.Do(func() {
		if err := current.init(); err != nil {
			logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
			initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
		}
	})
	return initErr
}

// WriteText places text on the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	current.writeText([]byte(text))
	logger.WithComponent("clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	data := current.readText()
	if data == nil {
		return "", nil
	}
	return string(data), nil
}
