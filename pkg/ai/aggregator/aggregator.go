package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"urban-assistant-be/internal/metrics"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/urbanapi"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("urban-assistant/aggregator")

// Fragment is the serialized result of one data-fetch action
type Fragment struct {
	Source tools.ActionName `json:"source"`
	Text   string           `json:"text"`
}

// Bundle holds fragments in resolution order
type Bundle []Fragment

// String concatenates fragment texts in order
func (b Bundle) String() string {
	var sb strings.Builder
	for _, f := range b {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// Sources lists the actions that contributed
func (b Bundle) Sources() []tools.ActionName {
	out := make([]tools.ActionName, len(b))
	for i, f := range b {
		out[i] = f.Source
	}
	return out
}

type Config struct {
	Parallel     bool
	MaxParallel  int
	FetchTimeout time.Duration
}

// Aggregator collects context for resolved actions
type Aggregator struct {
	registry *urbanapi.Registry
	logger   logger.ILogger
	config   Config
}

func NewAggregator(registry *urbanapi.Registry, log logger.ILogger, cfg Config) *Aggregator {
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 4
	}
	return &Aggregator{registry: registry, logger: log, config: cfg}
}

// Aggregate runs the fetch bound to every action. Failed fetches are logged
// and left out; the bundle keeps the order of actions either way.
func (a *Aggregator) Aggregate(ctx context.Context, territory urbanapi.Territory, actions []tools.ActionName) Bundle {
	ctx, span := tracer.Start(ctx, "aggregator.aggregate")
	defer span.End()
	start := time.Now()
	defer func() {
		metrics.StageLatency.WithLabelValues("aggregate").Observe(time.Since(start).Seconds())
	}()

	results := make([]*Fragment, len(actions))

	if a.config.Parallel && len(actions) > 1 {
		var g errgroup.Group
		g.SetLimit(a.config.MaxParallel)
		for i, action := range actions {
			g.Go(func() error {
				results[i] = a.fetch(ctx, territory, action)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, action := range actions {
			results[i] = a.fetch(ctx, territory, action)
		}
	}

	bundle := make(Bundle, 0, len(actions))
	for _, r := range results {
		if r != nil {
			bundle = append(bundle, *r)
		}
	}

	span.SetAttributes(
		attribute.Int("actions", len(actions)),
		attribute.Int("fragments", len(bundle)),
	)
	return bundle
}

func (a *Aggregator) fetch(ctx context.Context, territory urbanapi.Territory, action tools.ActionName) *Fragment {
	ctx, span := tracer.Start(ctx, "aggregator.fetch",
		trace.WithAttributes(attribute.String("action", action.String())))
	defer span.End()

	log := logger.Ctx(ctx, a.logger)

	fn, ok := a.registry.Lookup(action)
	if !ok {
		a.fail(log, action, fmt.Errorf("no fetch function bound"))
		return nil
	}

	if a.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.FetchTimeout)
		defer cancel()
	}

	raw, err := call(ctx, fn, territory)
	if err != nil {
		span.RecordError(err)
		a.fail(log, action, err)
		return nil
	}
	return &Fragment{Source: action, Text: string(raw)}
}

// call turns a panicking fetch into an error
func call(ctx context.Context, fn urbanapi.FetchFunc, territory urbanapi.Territory) (raw json.RawMessage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return fn(ctx, territory)
}

func (a *Aggregator) fail(log logger.ILogger, action tools.ActionName, err error) {
	metrics.FetchFailures.WithLabelValues(action.String()).Inc()
	log.Error("Aggregator", "Could not retrieve context from API", map[string]interface{}{
		"action": action.String(),
		"error":  err.Error(),
	})
}
