package event

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler receives delivered events.
type Handler func(Event)

// Subscription is a registered handler.
type Subscription struct {
	id      string
	pattern string
	handler Handler
	bus     *Bus
}

// ID returns the unique subscription id.
func (s *Subscription) ID() string {
	return s.id
}

// Pattern returns the topic pattern.
func (s *Subscription) Pattern() string {
	return s.pattern
}

// Unsubscribe removes the subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.bus.remove(s.id)
}

// Bus delivers events synchronously to matching subscriptions.
//
// The subscription list is guarded so hosts may subscribe from other
// goroutines, but delivery happens on the goroutine calling Emit.
type Bus struct {
	mu   sync.RWMutex
	subs []*Subscription

	onError func(error)
	now     func() time.Time
}

// Option configures a Bus.
type Option func(*Bus)

// WithErrorHandler receives handler panics as *HandlerError.
func WithErrorHandler(fn func(error)) Option {
	return func(b *Bus) {
		b.onError = fn
	}
}

// WithClock sets the time source for Event.Time.
func WithClock(now func() time.Time) Option {
	return func(b *Bus) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for topics matching pattern.
func (b *Bus) Subscribe(pattern string, handler Handler) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if err := ValidatePattern(pattern); err != nil {
		return nil, fmt.Errorf("%w: %q", err, pattern)
	}

	sub := &Subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: handler,
		bus:     b,
	}
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return sub, nil
}

// MustSubscribe is Subscribe for known-valid patterns.
func (b *Bus) MustSubscribe(pattern string, handler Handler) *Subscription {
	sub, err := b.Subscribe(pattern, handler)
	if err != nil {
		panic(err)
	}
	return sub
}

func (b *Bus) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Emit delivers payload on topic to every matching subscription and returns
// the event. Subscriptions added or removed by a handler take effect from
// the next Emit.
func (b *Bus) Emit(topic string, payload any) (Event, error) {
	if err := ValidateTopic(topic); err != nil {
		return Event{}, fmt.Errorf("%w: %q", err, topic)
	}
	ev := newEvent(topic, payload, b.now())

	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if Match(s.pattern, topic) {
			b.deliver(s, ev)
		}
	}
	return ev, nil
}

func (b *Bus) deliver(s *Subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil && b.onError != nil {
			b.onError(&HandlerError{
				SubscriptionID: s.id,
				Topic:          ev.Topic,
				Err:            fmt.Errorf("%w: %v", ErrHandlerPanic, r),
			})
		}
	}()
	s.handler(ev)
}

// Recorder collects every event it is subscribed to.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Record subscribes a new recorder to pattern on b.
func Record(b *Bus, pattern string) *Recorder {
	r := &Recorder{}
	b.MustSubscribe(pattern, func(ev Event) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	})
	return r
}

// Events returns the recorded events in delivery order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Topics returns the recorded topics in delivery order.
func (r *Recorder) Topics() []string {
	events := r.Events()
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.Topic
	}
	return out
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
