package telemetry

import (
	"sort"
	"sync"
)

// Attrs carries structured span and event data.
type Attrs map[string]any

// Observer receives spans and point events from the engine.
type Observer interface {
	// SpanStart opens a span. The returned span must be ended exactly once.
	SpanStart(name string, attrs Attrs) Span

	// Event records a point-in-time event.
	Event(name string, attrs Attrs)
}

// Span is an open unit of work.
type Span interface {
	// SetAttr attaches data discovered while the span is open.
	SetAttr(key string, value any)

	// End closes the span. err is nil for success.
	End(err error)
}

// Nop returns an observer that drops everything.
func Nop() Observer {
	return nopObserver{}
}

type nopObserver struct{}

func (nopObserver) SpanStart(string, Attrs) Span { return nopSpan{} }
func (nopObserver) Event(string, Attrs)          {}

type nopSpan struct{}

func (nopSpan) SetAttr(string, any) {}
func (nopSpan) End(error)           {}

// OrNop returns o, or Nop when o is nil.
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop()
	}
	return o
}

// sortedKeys returns attribute keys in a stable order.
func sortedKeys(attrs Attrs) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneAttrs(attrs Attrs) Attrs {
	out := make(Attrs, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// Record is one span or event captured by a Recorder.
type Record struct {
	Kind  string // "span" or "event"
	Name  string
	Attrs Attrs
	Err   error
}

// Recorder is an Observer that keeps every finished span and event.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SpanStart implements Observer.
func (r *Recorder) SpanStart(name string, attrs Attrs) Span {
	return &recordedSpan{rec: r, name: name, attrs: cloneAttrs(attrs)}
}

// Event implements Observer.
func (r *Recorder) Event(name string, attrs Attrs) {
	r.add(Record{Kind: "event", Name: name, Attrs: cloneAttrs(attrs)})
}

func (r *Recorder) add(rec Record) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
}

// Records returns a copy of everything recorded so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Names returns the names of the recorded entries of the given kind.
func (r *Recorder) Names(kind string) []string {
	var names []string
	for _, rec := range r.Records() {
		if rec.Kind == kind {
			names = append(names, rec.Name)
		}
	}
	return names
}

type recordedSpan struct {
	rec   *Recorder
	name  string
	attrs Attrs
	ended bool
}

func (s *recordedSpan) SetAttr(key string, value any) {
	s.attrs[key] = value
}

func (s *recordedSpan) End(err error) {
	if s.ended {
		return
	}
	s.ended = true
	s.rec.add(Record{Kind: "span", Name: s.name, Attrs: s.attrs, Err: err})
}
