package job

import (
	"fmt"

	"github.com/rs/zerolog"
)

// asynqLogger adapts zerolog to asynq.Logger.
type asynqLogger struct {
	logger zerolog.Logger
}

func newAsynqLogger(logger *zerolog.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.With().Str("component", "asynq").Logger()}
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }

// Fatal logs without exiting; the job server must not take the process down.
func (l *asynqLogger) Fatal(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
