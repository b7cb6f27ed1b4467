package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opções do logger.
type Config struct {
	Env   string // development -> consola legível; production -> JSON
	Level string // trace, debug, info, warn, error
}

// Logger embute zerolog.Logger, expondo directamente Info(), Error(), etc.
type Logger struct {
	zerolog.Logger
}

// New cria um logger estruturado. Em development escreve para a consola em
// formato legível; em qualquer outro ambiente emite JSON por linha.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()

	// Bibliotecas que usam o logger global do zerolog passam pelo mesmo destino.
	log.Logger = zl

	return &Logger{Logger: zl}
}
