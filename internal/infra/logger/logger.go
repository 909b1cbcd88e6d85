package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level  string
	Env    string
	File   string
	Module string
}

// New 開發環境輸出 console 格式, 其餘輸出 JSON
// 有設定 File 時同時寫檔, 由 lumberjack 負責切檔
func New(cfg Config) (zerolog.Logger, io.Closer) {
	var writers []io.Writer
	if isDevelopment(cfg.Env) {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, os.Stdout)
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100, // MB
			MaxBackups: 7,
			MaxAge:     30, // days
			Compress:   true,
		}
		writers = append(writers, rotator)
		closer = rotator
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("module", cfg.Module).
		Logger()
	return logger, closer
}

// ParseLevel 無法解析時用 info
func ParseLevel(level string) zerolog.Level {
	lv, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lv
}

func isDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case "debug", "development", "dev", "":
		return true
	}
	return false
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
