package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// SlogObserver writes spans and events as structured log records.
//
// Spans produce a debug "span.start" record and a "span.end" record carrying
// the duration; a span ended with an error logs at warn level.
type SlogObserver struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewSlog creates an observer backed by logger. A nil logger uses
// slog.Default().
func NewSlog(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger, now: time.Now}
}

// SpanStart implements Observer.
func (o *SlogObserver) SpanStart(name string, attrs Attrs) Span {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "span.start", o.attrs(name, attrs)...)
	return &slogSpan{obs: o, name: name, attrs: cloneAttrs(attrs), start: o.now()}
}

// Event implements Observer.
func (o *SlogObserver) Event(name string, attrs Attrs) {
	o.logger.LogAttrs(context.Background(), slog.LevelInfo, "event", o.attrs(name, attrs)...)
}

func (o *SlogObserver) attrs(name string, attrs Attrs) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs)+1)
	out = append(out, slog.String("name", name))
	for _, k := range sortedKeys(attrs) {
		out = append(out, slog.Any(k, attrs[k]))
	}
	return out
}

type slogSpan struct {
	obs   *SlogObserver
	name  string
	attrs Attrs
	start time.Time
	ended bool
}

func (s *slogSpan) SetAttr(key string, value any) {
	s.attrs[key] = value
}

func (s *slogSpan) End(err error) {
	if s.ended {
		return
	}
	s.ended = true

	level := slog.LevelDebug
	attrs := s.obs.attrs(s.name, s.attrs)
	attrs = append(attrs, slog.Duration("duration", s.obs.now().Sub(s.start)))
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.obs.logger.LogAttrs(context.Background(), level, "span.end", attrs...)
}

// ParseLevel converts "debug", "info", "warn" or "error" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("telemetry: unknown log level %q", s)
}

// NewLogger builds a text or JSON slog logger writing to w.
func NewLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
