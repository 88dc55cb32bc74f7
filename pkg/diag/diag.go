// Package diag provides an ordered diagnostics sink for the conversion engine.
//
// The engine never aborts on a recoverable inconsistency: conflicting option
// overwrites, unsupported trace features, ambiguous color formats and similar
// conditions are recorded as warnings and resolved by a documented default.
// Every engine entry point takes a *Sink so that the caller owns the warning
// list; there is no process-wide warning channel.
//
// A Sink records warnings in the order they were raised and never retracts
// one. The CLI mirrors warnings to its logger by registering an observer with
// [Sink.Observe]; library code only ever appends.
//
// Sink is not safe for concurrent use. The engine is single-threaded (one
// conversion, one sink), so no locking is done.
package diag

import "fmt"

// Warning is a single recorded diagnostic.
type Warning struct {
	Component string // originating component, e.g. "options", "bar", "subgrid"
	Message   string
}

// String formats the warning as "component: message".
func (w Warning) String() string {
	return w.Component + ": " + w.Message
}

// Sink is an append-only, ordered collection of warnings.
// The zero value is not usable; use New.
type Sink struct {
	warnings  []Warning
	observers []func(Warning)
}

// New creates an empty sink.
func New() *Sink {
	return &Sink{}
}

// Warnf records a formatted warning for the given component.
func (s *Sink) Warnf(component, format string, args ...any) {
	w := Warning{Component: component, Message: fmt.Sprintf(format, args...)}
	s.warnings = append(s.warnings, w)
	for _, fn := range s.observers {
		fn(w)
	}
}

// Observe registers fn to be called for every subsequently recorded warning.
// Warnings recorded before Observe are not replayed.
func (s *Sink) Observe(fn func(Warning)) {
	s.observers = append(s.observers, fn)
}

// Warnings returns a copy of all recorded warnings in order.
func (s *Sink) Warnings() []Warning {
	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Len returns the number of recorded warnings.
func (s *Sink) Len() int { return len(s.warnings) }
