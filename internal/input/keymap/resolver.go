package keymap

import (
	"sort"
	"sync"
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Status is the outcome of resolving a token sequence.
type Status int

const (
	// StatusMiss means no binding starts with the tokens.
	StatusMiss Status = iota

	// StatusPending means the tokens are a strict prefix of a binding.
	StatusPending

	// StatusMatch means a binding was selected.
	StatusMatch
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusMiss:
		return "miss"
	case StatusPending:
		return "pending"
	case StatusMatch:
		return "match"
	default:
		return "unknown"
	}
}

// Match is the binding selected by a resolution and its action.
type Match struct {
	Binding Binding
	Action  Action
}

// Resolution is the transient result of Resolve.
type Resolution struct {
	Status Status

	// Match is set when Status is StatusMatch.
	Match *Match

	// Consumed is the number of tokens that matched trie edges.
	Consumed int

	// NextExpected lists the sorted one-token continuations of a pending
	// prefix.
	NextExpected []string

	// Timeout is the smallest sequence timeout reachable below a pending
	// prefix. Zero means none was found and the caller picks a default.
	Timeout time.Duration
}

type trieNode struct {
	children map[string]*trieNode
	bindings []Binding
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

type trie struct {
	revision uint64
	root     *trieNode
}

// Resolver resolves tokens against per-mode tries derived from a Registry.
//
// Tries are rebuilt in full whenever the registry revision differs from the
// one they were built at, so registrations are visible on the next call.
type Resolver struct {
	registry *Registry
	obs      telemetry.Observer

	mu    sync.Mutex
	tries map[string]*trie
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverObserver reports each resolution as a span.
func WithResolverObserver(o telemetry.Observer) ResolverOption {
	return func(r *Resolver) {
		r.obs = telemetry.OrNop(o)
	}
}

// NewResolver creates a resolver over registry.
func NewResolver(registry *Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: registry,
		obs:      telemetry.Nop(),
		tries:    make(map[string]*trie),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry the resolver reads from.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Reset drops the cached trie of mode, or of every mode when mode is empty.
func (r *Resolver) Reset(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mode == "" {
		r.tries = make(map[string]*trie)
		return
	}
	delete(r.tries, mode)
}

// Resolve walks the trie of mode with tokens, evaluating guards against flags.
func (r *Resolver) Resolve(mode string, tokens []string, flags map[string]bool) Resolution {
	span := r.obs.SpanStart("keymap.resolve", telemetry.Attrs{
		"mode":   mode,
		"tokens": len(tokens),
	})
	res := r.resolve(mode, tokens, flags)
	span.SetAttr("status", res.Status.String())
	if res.Match != nil {
		span.SetAttr("binding_id", res.Match.Binding.ID)
	}
	span.End(nil)
	return res
}

func (r *Resolver) resolve(mode string, tokens []string, flags map[string]bool) Resolution {
	node := r.trieFor(mode).root
	for i, tok := range tokens {
		child, ok := node.children[tok]
		if !ok {
			return Resolution{Status: StatusMiss, Consumed: i}
		}
		node = child
	}

	if len(node.bindings) > 0 {
		if best, ok := pickBinding(node.bindings, flags); ok {
			action, _ := r.registry.Action(best.ActionID)
			return Resolution{
				Status:   StatusMatch,
				Match:    &Match{Binding: best, Action: action},
				Consumed: len(tokens),
			}
		}
	}

	if len(node.children) > 0 {
		return Resolution{
			Status:       StatusPending,
			Consumed:     len(tokens),
			NextExpected: sortedChildren(node),
			Timeout:      minTimeout(node),
		}
	}

	return Resolution{Status: StatusMiss, Consumed: len(tokens)}
}

// trieFor returns a trie of mode that is current with the registry.
func (r *Resolver) trieFor(mode string) *trie {
	rev := r.registry.Revision()

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tries[mode]; ok && t.revision == rev {
		return t
	}
	t := buildTrie(r.registry.snapshot(mode))
	r.tries[mode] = t
	return t
}

func buildTrie(revision uint64, bindings []Binding) *trie {
	root := newTrieNode()
	for _, b := range bindings {
		node := root
		for _, tok := range b.Sequence.Tokens() {
			child, ok := node.children[tok]
			if !ok {
				child = newTrieNode()
				node.children[tok] = child
			}
			node = child
		}
		node.bindings = append(node.bindings, b)
	}
	return &trie{revision: revision, root: root}
}

// pickBinding returns the passing binding with the highest priority, ties
// broken by the smallest id.
func pickBinding(candidates []Binding, flags map[string]bool) (Binding, bool) {
	var (
		best  Binding
		found bool
	)
	for _, b := range candidates {
		if !b.Matches(flags) {
			continue
		}
		if !found || b.Priority > best.Priority || (b.Priority == best.Priority && b.ID < best.ID) {
			best = b
			found = true
		}
	}
	return best, found
}

func sortedChildren(node *trieNode) []string {
	out := make([]string, 0, len(node.children))
	for tok := range node.children {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// minTimeout scans every binding strictly below node.
func minTimeout(node *trieNode) time.Duration {
	var best time.Duration
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		for _, child := range n.children {
			for _, b := range child.bindings {
				if t := b.Sequence.Timeout; t > 0 && (best == 0 || t < best) {
					best = t
				}
			}
			walk(child)
		}
	}
	walk(node)
	return best
}
