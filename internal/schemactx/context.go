// Package schemactx carries ambient, non-functional state through
// context.Context: tracing and the reference stack used to annotate cycle
// diagnostics.
//
// It deliberately does NOT carry the DynamicScope the evaluator needs for
// unevaluatedProperties/unevaluatedItems bookkeeping — that is an explicit
// linked-list struct threaded as a normal Go parameter (see the top-level
// DynamicScope type), since its merge-on-return semantics belong to the
// call stack, not to ambient context plumbing.
package schemactx

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lestrrat-go/blackmagic"
)

// ValidationContext consolidates ambient, non-functional validation data
// into a single struct to avoid a proliferation of individual context keys.
type ValidationContext struct {
	TraceLogger    *slog.Logger
	ReferenceStack []string
}

type validationContextKey struct{}

// WithValidationContext adds or replaces the consolidated context.
func WithValidationContext(ctx context.Context, vctx *ValidationContext) context.Context {
	return context.WithValue(ctx, validationContextKey{}, vctx)
}

// ValidationContextFrom retrieves the consolidated context, returning an
// empty one if none was ever attached.
func ValidationContextFrom(ctx context.Context) *ValidationContext {
	if v := ctx.Value(validationContextKey{}); v != nil {
		if vctx, ok := v.(*ValidationContext); ok {
			return vctx
		}
	}
	return &ValidationContext{}
}

// WithTraceLogger attaches a *slog.Logger used to trace reference
// resolution during validation. Compile takes no context and is not traced.
func WithTraceLogger(ctx context.Context, logger *slog.Logger) context.Context {
	vctx := ValidationContextFrom(ctx)
	newVctx := *vctx
	newVctx.TraceLogger = logger
	return WithValidationContext(ctx, &newVctx)
}

// TraceLoggerFromContext returns the ambient logger, or a discard logger if
// none was attached.
func TraceLoggerFromContext(ctx context.Context) *slog.Logger {
	vctx := ValidationContextFrom(ctx)
	if vctx.TraceLogger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return vctx.TraceLogger
}

// WithReferenceStack records the chain of $ref/$dynamicRef URIs currently
// being resolved, purely for cycle diagnostics in logs; it has no bearing
// on validation correctness (cyclic reference graphs are permitted).
func WithReferenceStack(ctx context.Context, stack []string) context.Context {
	vctx := ValidationContextFrom(ctx)
	newVctx := *vctx
	newVctx.ReferenceStack = stack
	return WithValidationContext(ctx, &newVctx)
}

// ReferenceStackFromContext assigns the current reference stack into dst
// via blackmagic.AssignIfCompatible, or returns an error if none (or an
// empty one) was attached.
func ReferenceStackFromContext(ctx context.Context, dst any) error {
	vctx := ValidationContextFrom(ctx)
	if len(vctx.ReferenceStack) == 0 {
		return fmt.Errorf("reference stack not found in context")
	}
	return blackmagic.AssignIfCompatible(dst, vctx.ReferenceStack)
}
