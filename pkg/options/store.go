package options

import (
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/diag"
)

const component = "options"

// MergeFunc combines an existing value with an incoming one. Returning an
// error makes the store fall back to a plain overwrite (with a warning).
type MergeFunc func(existing, incoming Value) (Value, error)

// KeepExisting is a MergeFunc that keeps the value already in the store.
func KeepExisting(existing, _ Value) (Value, error) { return existing, nil }

// TakeIncoming is a MergeFunc that replaces the stored value.
func TakeIncoming(_, incoming Value) (Value, error) { return incoming, nil }

// PreferExisting merges two map values, keeping existing entries on
// conflict. Non-map inputs are returned unchanged (existing wins).
func PreferExisting(existing, incoming Value) (Value, error) {
	em, eok := existing.AsMap()
	im, iok := incoming.AsMap()
	if !eok || !iok {
		return existing, nil
	}
	out := make(map[string]Value, len(em)+len(im))
	for k, v := range im {
		out[k] = v
	}
	for k, v := range em {
		out[k] = v
	}
	return MapOf(out), nil
}

// ConcatLists is a MergeFunc that concatenates two list values.
func ConcatLists(existing, incoming Value) (Value, error) {
	el, _ := existing.AsList()
	il, _ := incoming.AsList()
	joined := make([]Value, 0, len(el)+len(il))
	joined = append(joined, el...)
	joined = append(joined, il...)
	return List(joined...), nil
}

// Store is a mutable, insertion-ordered mapping from option name to Value.
// It is the only mutation surface for a panel's layout options, so ordering
// dependencies between passes are explicit in the API.
//
// The zero value is not usable; use NewStore.
type Store struct {
	keys []string
	vals map[string]Value
	sink *diag.Sink
}

// NewStore creates an empty store reporting to sink.
func NewStore(sink *diag.Sink) *Store {
	return &Store{vals: map[string]Value{}, sink: sink}
}

// Set stores v under key. If the key already holds a different scalar, the
// conflict is warned about and the new value wins. If the key holds a map
// and v is a map, the two are merged (incoming entries win per-key) instead
// of replaced; use Merge with TakeIncoming to force replacement.
func (s *Store) Set(key string, v Value) {
	old, exists := s.vals[key]
	if !exists {
		s.put(key, v)
		return
	}
	if old.Kind() == KindMap && v.Kind() == KindMap {
		s.vals[key] = s.mergeMaps(key, old, v)
		return
	}
	if old.IsScalar() && !old.Equal(v) {
		s.sink.Warnf(component, "option %q already set to %q; overwriting with %q", key, renderEntry(key, old), renderEntry(key, v))
	}
	s.vals[key] = v
}

// put inserts a key that is known to be absent.
func (s *Store) put(key string, v Value) {
	s.keys = append(s.keys, key)
	s.vals[key] = v
}

// mergeMaps merges incoming map entries into the existing map value.
// Conflicting scalar entries are overwritten with a warning; nested maps
// merge recursively.
func (s *Store) mergeMaps(key string, existing, incoming Value) Value {
	em, _ := existing.AsMap()
	im, _ := incoming.AsMap()
	out := make(map[string]Value, len(em)+len(im))
	for k, v := range em {
		out[k] = v
	}
	for k, v := range im {
		if old, ok := out[k]; ok {
			if old.Kind() == KindMap && v.Kind() == KindMap {
				out[k] = s.mergeMaps(key+"/"+k, old, v)
				continue
			}
			if old.IsScalar() && !old.Equal(v) {
				s.sink.Warnf(component, "option %q entry %q changed from %q to %q", key, k, old.String(), v.String())
			}
		}
		out[k] = v
	}
	return MapOf(out)
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (Value, bool) {
	v, ok := s.vals[key]
	return v, ok
}

// GetOrDefault returns the stored value, or def if the key is absent.
func (s *Store) GetOrDefault(key string, def Value) Value {
	if v, ok := s.vals[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.vals[key]
	return ok
}

// Remove deletes key from the store, warning if it was absent.
func (s *Store) Remove(key string) {
	if _, ok := s.vals[key]; !ok {
		s.sink.Warnf(component, "remove of absent option %q", key)
		return
	}
	delete(s.vals, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Merge stores v under key if absent; otherwise applies fn to the existing
// and incoming values. If fn fails, the store falls back to a plain
// overwrite and warns.
func (s *Store) Merge(key string, v Value, fn MergeFunc) {
	old, exists := s.vals[key]
	if !exists {
		s.put(key, v)
		return
	}
	merged, err := fn(old, v)
	if err != nil {
		s.sink.Warnf(component, "merge of option %q failed (%v); overwriting", key, err)
		s.vals[key] = v
		return
	}
	s.vals[key] = merged
}

// listSeparator splits delimited scalar strings during list coercion.
const listSeparator = ","

// AppendToList appends v to the list stored under key, coercing a non-list
// value to a one-element list first. A delimited text scalar is split on
// commas, with a warning since this may overcount elements. If v is itself
// a list its elements are appended individually.
func (s *Store) AppendToList(key string, v Value) {
	old, exists := s.vals[key]
	var elems []Value
	switch {
	case !exists || old.IsAbsent():
		elems = nil
	case old.Kind() == KindList:
		l, _ := old.AsList()
		elems = append(elems, l...)
	default:
		elems = s.coerceToList(key, old)
	}
	if add, ok := v.AsList(); ok {
		elems = append(elems, add...)
	} else {
		elems = append(elems, v)
	}
	if !exists {
		s.put(key, List(elems...))
		return
	}
	s.vals[key] = List(elems...)
}

// coerceToList turns a scalar value into list elements.
func (s *Store) coerceToList(key string, v Value) []Value {
	if t, ok := v.AsText(); ok && strings.Contains(t, listSeparator) {
		s.sink.Warnf(component, "option %q: splitting scalar %q on %q to form a list; this may overcount elements", key, t, listSeparator)
		parts := strings.Split(t, listSeparator)
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = Text(strings.TrimSpace(p))
		}
		return out
	}
	return []Value{v}
}

// Keys returns the option names in insertion order.
func (s *Store) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of stored options.
func (s *Store) Len() int { return len(s.keys) }

// Render produces the option block body: one "key=value" entry per line,
// comma-separated, in insertion order. Flags render as bare keys.
func (s *Store) Render() string {
	if len(s.keys) == 0 {
		return ""
	}
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = renderEntry(k, s.vals[k])
	}
	return strings.Join(parts, ",\n")
}
