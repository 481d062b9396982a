package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// CorrelationKey is the field name carrying the per-request id
const CorrelationKey = "correlation_id"

type ctxKey struct{}

type correlationKey struct{}

// NewContext stores l in ctx
func NewContext(ctx context.Context, l ILogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// Ctx returns the logger stored in ctx, or fallback
func Ctx(ctx context.Context, fallback ILogger) ILogger {
	if l, ok := ctx.Value(ctxKey{}).(ILogger); ok && l != nil {
		return l
	}
	return fallback
}

// WithCorrelation stores the request id and a correlated child of l in ctx
func WithCorrelation(ctx context.Context, l ILogger, id string) context.Context {
	ctx = context.WithValue(ctx, correlationKey{}, id)
	return NewContext(ctx, l.WithCorrelationID(id))
}

// CorrelationID returns the request id stored by WithCorrelation
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// Decision record messages. FilterDecisionRecords keeps entries whose message starts with one of them.
const (
	MsgTerritoryName     = "Territory name"
	MsgTerritoryType     = "Territory type"
	MsgSelectedPipeline  = "Selected pipeline"
	MsgSelectedFunctions = "Selected functions"
	MsgChunkMetadata     = "Chunk metadata"
)

var decisionMessages = []string{
	MsgTerritoryName,
	MsgTerritoryType,
	MsgSelectedPipeline,
	MsgSelectedFunctions,
	MsgChunkMetadata,
}

func FilterDecisionRecords(entries []LogEntry) []LogEntry {
	out := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		if IsDecision(e.Message) {
			out = append(out, e)
		}
	}
	return out
}

// IsDecision reports whether message is a decision record
func IsDecision(message string) bool {
	for _, m := range decisionMessages {
		if strings.HasPrefix(message, m) {
			return true
		}
	}
	return false
}

// NewNopLogger discards everything; used where logging is not configured
func NewNopLogger() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}
