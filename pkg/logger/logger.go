package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init cấu hình global zerolog logger: console output khi development, JSON ở các môi trường khác.
// level rỗng hoặc không parse được thì dùng info.
func Init(env, level string) {
	log.Logger = New(os.Stderr, env)
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// New tạo logger gắn field "env", dùng chung cho Init và tests
func New(w io.Writer, env string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env == "development" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).With().Timestamp().Str("env", env).Logger()
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
