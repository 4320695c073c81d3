package av

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// LogLevel controls how chatty the native libraries are on stderr.
type LogLevel int32

const (
	LogQuiet   LogLevel = -8
	LogPanic   LogLevel = 0
	LogFatal   LogLevel = 8
	LogError   LogLevel = 16
	LogWarning LogLevel = 24
	LogInfo    LogLevel = 32
	LogVerbose LogLevel = 40
	LogDebug   LogLevel = 48
	LogTrace   LogLevel = 56
)

func (l LogLevel) String() string {
	switch l {
	case LogQuiet:
		return "quiet"
	case LogPanic:
		return "panic"
	case LogFatal:
		return "fatal"
	case LogError:
		return "error"
	case LogWarning:
		return "warning"
	case LogInfo:
		return "info"
	case LogVerbose:
		return "verbose"
	case LogDebug:
		return "debug"
	case LogTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// SetLogLevel sets the native log threshold. Output still goes to stderr;
// the native logger writes through varargs and cannot be redirected here.
func SetLogLevel(level LogLevel) {
	nav.LogSetLevel(int32(level))
}

// GetLogLevel returns the current native log threshold.
func GetLogLevel() LogLevel {
	return LogLevel(nav.LogGetLevel())
}

var (
	loggerMu sync.RWMutex
	logger   logrus.FieldLogger = newDefaultLogger()
)

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogger replaces the logger used for boundary events (library loading,
// resource teardown failures). Pass nil to restore the default.
func SetLogger(l logrus.FieldLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = newDefaultLogger()
	}
	logger = l
}

func log() logrus.FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
