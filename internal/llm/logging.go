package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// event log and emits a structured log line per call.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *zap.Logger
	bodies    bool
}

// LoggingOption configures a LoggingProvider.
type LoggingOption func(*LoggingProvider)

// WithEventRepo persists each call as an llm_request_events row.
func WithEventRepo(repo store.EventRepo) LoggingOption {
	return func(l *LoggingProvider) { l.eventRepo = repo }
}

// WithLogger sets the zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) LoggingOption {
	return func(l *LoggingProvider) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithBodies controls whether request and response bodies are recorded.
func WithBodies(on bool) LoggingOption {
	return func(l *LoggingProvider) { l.bodies = on }
}

// WithLogging wraps a Provider with event logging. provider is the
// configured provider name ("openai", "gemini", ...).
func WithLogging(p Provider, provider string, opts ...LoggingOption) Provider {
	l := &LoggingProvider{inner: p, provider: provider, logger: zap.NewNop(), bodies: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latencyMs,
		Success:   err == nil,
	}
	if l.bodies {
		data.RequestBody = serializeRequest(req)
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		if l.bodies {
			data.ResponseBody = string(resp.Content)
		}
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", purpose),
		zap.Int64("latency_ms", latencyMs),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm request", fields...)
	}

	// A failed audit write never fails the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.Warn("failed to record LLM request event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(def)
			b.WriteString("\n")
		}
	}

	return b.String()
}
