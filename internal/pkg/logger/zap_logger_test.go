package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelatedLogsCanBeReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	base := NewZapLogger(path, true)

	reqA := base.WithCorrelationID("req-a")
	reqB := base.WithCorrelationID("req-b")

	reqA.Info("router", MsgSelectedPipeline, map[string]interface{}{"pipeline": "strategy_development_pipeline"})
	reqB.Info("router", MsgSelectedPipeline, nil)
	reqA.Info("pipeline", "Strategy context assembled", nil)
	reqA.Info("pipeline", MsgChunkMetadata, map[string]interface{}{"score": 0.9})
	require.NoError(t, base.Sync())

	entries, err := base.GetLogsByCorrelationID("req-a")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, MsgSelectedPipeline, entries[0].Message)
	assert.Equal(t, "req-a", entries[0].CorrelationID)

	decisions := FilterDecisionRecords(entries)
	require.Len(t, decisions, 2)
	assert.Equal(t, MsgChunkMetadata, decisions[1].Message)

	all, err := base.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, MsgChunkMetadata, all[0].Message, "newest first")

	found, err := base.GetLogById(all[0].Id)
	require.NoError(t, err)
	assert.Equal(t, all[0].Message, found.Message)
}

func TestMissingLogFileIsEmpty(t *testing.T) {
	l := NewZapLogger(filepath.Join(t.TempDir(), "none.log"), true)
	entries, err := l.GetLogsByCorrelationID("x")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestContextHelpers(t *testing.T) {
	base := NewNopLogger()
	assert.Equal(t, ILogger(base), Ctx(context.Background(), base))

	ctx := WithCorrelation(context.Background(), base, "id-1")
	assert.Equal(t, "id-1", CorrelationID(ctx))
	assert.NotNil(t, Ctx(ctx, nil))
	assert.Empty(t, CorrelationID(context.Background()))
}

func TestGetLogByIdNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(path, true)
	l.Warn("test", "something", nil)
	require.NoError(t, l.Sync())

	_, err := l.GetLogById("missing")
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestDecisionsAreCollectedPerRequest(t *testing.T) {
	base := NewZapLogger(filepath.Join(t.TempDir(), "app.log"), true)

	reqA := base.WithCorrelationID("req-a")
	reqB := base.WithCorrelationID("req-b")

	reqA.Info("router", MsgSelectedPipeline+": strategy_development_pipeline", nil)
	reqA.Info("pipeline", "Strategy context assembled", nil)
	reqA.Debug("pipeline", MsgChunkMetadata, nil)
	reqB.Warn("pipeline", MsgSelectedFunctions+": get_general_stats_city", nil)
	base.Info("router", MsgSelectedPipeline, nil)

	assert.Equal(t, []DecisionRecord{
		{Level: "INFO", Message: "Selected pipeline: strategy_development_pipeline"},
	}, base.TakeDecisions("req-a"))
	assert.Empty(t, base.TakeDecisions("req-a"), "records are handed out once")

	assert.Equal(t, []DecisionRecord{
		{Level: "WARN", Message: "Selected functions: get_general_stats_city"},
	}, reqB.(*ZapLogger).TakeDecisions("req-b"))
}

func TestNopLoggerHasNoDecisions(t *testing.T) {
	l := NewNopLogger()
	l.WithCorrelationID("x").Info("router", MsgSelectedPipeline, nil)
	assert.Nil(t, l.TakeDecisions("x"))
}
