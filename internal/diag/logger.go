// Package diag is the operational diagnostics logger: startup failures,
// cleanup errors and other error conditions, as opposed to the protocol-significant
// lines in internal/ioutil. It is leveled, timestamped, and always written
// to stderr so it can never be confused with (or corrupt) the substring
// contract tests match against on stdout. See SPEC_FULL.md §10.1.
package diag

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process-wide diagnostics logger, writing to stderr.
func New() *zap.SugaredLogger {
	return NewAt(zapcore.Lock(os.Stderr))
}

// NewAt builds a diagnostics logger over an arbitrary sink, so callers
// (tests included) can capture what would otherwise go to stderr.
func NewAt(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), ws, zap.InfoLevel)
	return zap.New(core).Sugar()
}
