package testutil

import (
	"strings"
	"testing"

	"github.com/MGTheTrain/docsign/internal/pkg/config"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// testWriter routes log output through t.Log so it only shows for failing or verbose tests.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// SetupTestLogger initializes the process-wide logger for code that fetches it
// itself and returns a debug logger bound to t.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	err := logger.InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	})
	require.NoError(t, err)

	return logger.With(logger.NewWriterLogger(config.LogLevelDebug, testWriter{t: t}), "test", t.Name())
}
