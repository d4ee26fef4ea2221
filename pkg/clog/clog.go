package clog

import (
	"fmt"
	"io"
	"sync"

	"github.com/apex/log"
)

// Logging contexts for the service subsystems. Each one can be given its own
// writer and level; a context without its own logger writes through the
// global logger tagged with ctx=<name>.
const (
	GlobalLoggerCtx = "global"
	CycleCtx        = "cycle"
	EffectsCtx      = "effects"
	HubCtx          = "hub"
	StoreCtx        = "store"
	APICtx          = "api"
)

type ContextLogger struct {
	GlobalLogger   *log.Logger
	ContextLoggers sync.Map
}

func NewContextLogger(globalLoggerWriter io.WriteCloser) *ContextLogger {
	return &ContextLogger{
		GlobalLogger: newLogger(globalLoggerWriter),
	}
}

func newLogger(w io.WriteCloser) *log.Logger {
	return &log.Logger{
		Handler: NewHandler(w),
		Level:   log.InfoLevel,
	}
}

// AddLoggingContext gives ctx a logger of its own writing to w.
func (l *ContextLogger) AddLoggingContext(ctx string, w io.WriteCloser) {
	if previous, loaded := l.ContextLoggers.Swap(ctx, newLogger(w)); loaded {
		if h := handlerOf(previous); h != nil {
			h.Close()
		}
	}
}

func (l *ContextLogger) RemoveLoggingContext(ctx string) {
	logger, ok := l.ContextLoggers.LoadAndDelete(ctx)
	if !ok {
		return
	}

	if h := handlerOf(logger); h != nil {
		h.Close()
	}
}

func (l *ContextLogger) SetLevel(ctx string, level log.Level) {
	if ctx == GlobalLoggerCtx {
		l.GlobalLogger.Level = level
		return
	}

	if logger := l.contextLogger(ctx); logger != nil {
		logger.Level = level
	}
}

// SetAllLevels applies level to the global logger and every context logger.
func (l *ContextLogger) SetAllLevels(level log.Level) {
	l.GlobalLogger.Level = level
	l.ContextLoggers.Range(func(_, value any) bool {
		if logger, ok := value.(*log.Logger); ok {
			logger.Level = level
		}
		return true
	})
}

func (l *ContextLogger) SetLevelFromString(ctx, s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	l.SetLevel(ctx, level)

	return nil
}

func (l *ContextLogger) SetAllLevelsFromString(s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	l.SetAllLevels(level)

	return nil
}

func (l *ContextLogger) SetOutput(ctx string, w io.WriteCloser) error {
	var h *Handler
	if ctx == GlobalLoggerCtx {
		h = handlerOf(l.GlobalLogger)
	} else {
		h = handlerOf(l.contextLogger(ctx))
	}

	if h == nil {
		return fmt.Errorf("no such logging context %s", ctx)
	}

	h.SetOutput(w)
	return nil
}

func (l *ContextLogger) UsingCtx(ctx string) *log.Entry {
	if logger := l.contextLogger(ctx); logger != nil {
		return logger.WithField("ctx", ctx)
	}

	return l.GlobalLogger.WithField("ctx", ctx)
}

func (l *ContextLogger) Global() *log.Entry {
	return l.UsingCtx(GlobalLoggerCtx)
}

func (l *ContextLogger) contextLogger(ctx string) *log.Logger {
	logger, ok := l.ContextLoggers.Load(ctx)
	if !ok {
		return nil
	}

	clogger, _ := logger.(*log.Logger)
	return clogger
}

func handlerOf(logger any) *Handler {
	clogger, ok := logger.(*log.Logger)
	if !ok || clogger == nil {
		return nil
	}

	h, _ := clogger.Handler.(*Handler)
	return h
}
