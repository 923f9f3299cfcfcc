package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a logging call's context,
// such as the request id of the HTTP request being served.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler adds extractor attributes to every record. An extracted key
// that the record or the logger already carries is not added again.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
	bound      map[string]bool
}

func newContextHandler(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	var live []ContextExtractor
	for _, ex := range extractors {
		if ex != nil {
			live = append(live, ex)
		}
	}
	if len(live) == 0 {
		return next
	}
	return &contextHandler{Handler: next, extractors: live}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	var present map[string]bool
	rec.Attrs(func(a slog.Attr) bool {
		if present == nil {
			present = make(map[string]bool)
		}
		present[a.Key] = true
		return true
	})

	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok || h.bound[attr.Key] || present[attr.Key] {
			continue
		}
		rec.AddAttrs(attr)
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make(map[string]bool, len(h.bound)+len(attrs))
	for k := range h.bound {
		bound[k] = true
	}
	for _, a := range attrs {
		bound[a.Key] = true
	}
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors, bound: bound}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors, bound: h.bound}
}
