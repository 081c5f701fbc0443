package llm

import "context"

type purposeKey struct{}

// WithPurpose labels every LLM call made with ctx, e.g. "roadmap-levels".
// The label is what `pathwise llm stats` groups by. An empty purpose
// leaves ctx unchanged.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
