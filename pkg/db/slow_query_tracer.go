package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"projectboard/pkg/metrics"
)

type queryStartKey struct{}
type querySQLKey struct{}

// SlowQueryTracer records query durations and warns on slow statements.
type SlowQueryTracer struct {
	logger        *zap.Logger
	slowThreshold time.Duration
}

func NewSlowQueryTracer(logger *zap.Logger, slowThreshold time.Duration) *SlowQueryTracer {
	if slowThreshold == 0 {
		slowThreshold = 100 * time.Millisecond
	}
	return &SlowQueryTracer{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

func (t *SlowQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx = context.WithValue(ctx, queryStartKey{}, time.Now())
	ctx = context.WithValue(ctx, querySQLKey{}, data.SQL)
	return ctx
}

func (t *SlowQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	startTime, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}

	duration := time.Since(startTime)
	metrics.RecordDBQueryDuration(commandVerb(data.CommandTag.String()), duration)

	if duration > t.slowThreshold {
		sql, _ := ctx.Value(querySQLKey{}).(string)
		if sql == "" {
			sql = "unknown"
		}
		if len(sql) > 200 {
			sql = sql[:200] + "..."
		}

		t.logger.Warn("slow-query",
			zap.String("sql", sql),
			zap.Duration("took", duration),
			zap.String("command_tag", data.CommandTag.String()),
		)
	}
}

// commandVerb reduces a command tag like "INSERT 0 1" to its verb. Full
// tags carry row counts, which would blow up the metric's label set.
func commandVerb(tag string) string {
	if tag == "" {
		return "unknown"
	}
	if i := strings.IndexByte(tag, ' '); i > 0 {
		return tag[:i]
	}
	return tag
}
