package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/ngine/config"
)

// maxLogSize triggers rotation of the previous log on startup
const maxLogSize = 10 * 1024 * 1024

// setupLogging returns a JSON file logger when debug logging is on, a no-op logger otherwise
// The terminal owns stdout and stderr while the game runs, so logs only go to the file
func setupLogging(cfg config.Log) (*zap.Logger, io.Closer, error) {
	if !cfg.Debug {
		return zap.NewNop(), nil, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}

	path := filepath.Join(cfg.Dir, cfg.File)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(cfg.File)
		rotated := filepath.Join(cfg.Dir, fmt.Sprintf("%s-%s%s",
			strings.TrimSuffix(cfg.File, ext), time.Now().Format("20060102-150405"), ext))
		if err := os.Rename(path, rotated); err != nil {
			return nil, nil, fmt.Errorf("log rotate: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), zap.DebugLevel)
	return zap.New(core, zap.AddCaller()), f, nil
}
