package runtime

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the runtime package's default logger, used by isolates
// created without Config.Logger. It is a no-op logger unless set.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the runtime package's default logger.
// This must be called before creating isolates.
func SetLogger(l *zap.Logger) {
	logger = l
}
