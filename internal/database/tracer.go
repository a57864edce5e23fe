package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// slowQueryTracer logs statements whose execution exceeds threshold.
type slowQueryTracer struct {
	logger    *zerolog.Logger
	threshold time.Duration
	now       func() time.Time
}

func newSlowQueryTracer(logger *zerolog.Logger, threshold time.Duration) *slowQueryTracer {
	return &slowQueryTracer{
		logger:    logger,
		threshold: threshold,
		now:       time.Now,
	}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: t.now(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	elapsed := t.now().Sub(start.at)
	if elapsed < t.threshold {
		return
	}

	event := t.logger.Warn()
	if data.Err != nil {
		event = event.Err(data.Err)
	}
	event.
		Str("sql", start.sql).
		Str("command_tag", data.CommandTag.String()).
		Dur("duration", elapsed).
		Dur("threshold", t.threshold).
		Msg("slow query")
}
