package logger

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap/zapcore"
)

// decisionTTL bounds how long records of a request nobody takes are kept
const decisionTTL = 5 * time.Minute

// DecisionRecord is a decision entry captured for one request
type DecisionRecord struct {
	Level   string
	Message string
}

type decisionJournal struct {
	mu      sync.Mutex
	records *gocache.Cache
}

func newDecisionJournal(ttl time.Duration) *decisionJournal {
	return &decisionJournal{records: gocache.New(ttl, 2*ttl)}
}

func (j *decisionJournal) add(id string, r DecisionRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()

	var list []DecisionRecord
	if v, ok := j.records.Get(id); ok {
		list = v.([]DecisionRecord)
	}
	j.records.SetDefault(id, append(list, r))
}

func (j *decisionJournal) take(id string) []DecisionRecord {
	j.mu.Lock()
	defer j.mu.Unlock()

	v, ok := j.records.Get(id)
	if !ok {
		return nil
	}
	j.records.Delete(id)
	return v.([]DecisionRecord)
}

// decisionCore copies decision messages of correlated loggers into the journal
type decisionCore struct {
	zapcore.LevelEnabler
	journal       *decisionJournal
	correlationID string
}

func (c *decisionCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	for _, f := range fields {
		if f.Key == CorrelationKey && f.Type == zapcore.StringType {
			clone.correlationID = f.String
		}
	}
	return &clone
}

func (c *decisionCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.correlationID != "" && c.Enabled(ent.Level) && IsDecision(ent.Message) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *decisionCore) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	c.journal.add(c.correlationID, DecisionRecord{
		Level:   ent.Level.CapitalString(),
		Message: ent.Message,
	})
	return nil
}

func (c *decisionCore) Sync() error {
	return nil
}
