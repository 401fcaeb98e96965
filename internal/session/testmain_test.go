package session

import (
	"os"
	"testing"

	"github.com/zhubert/scribe/internal/logger"
)

func TestMain(m *testing.M) {
	// Keep test runs out of /tmp/scribe-debug.log
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}
