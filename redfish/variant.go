// Package redfish implements the Redfish Interface: a lazily-fetched tree
// view over a Redfish service's JSON resources, addressed by absolute URI
// and backed by a cache.Getter.
package redfish

import (
	"context"
	"sort"
)

// Kind discriminates the shape a Variant was parsed into.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindObject
	KindIterable
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindIterable:
		return "iterable"
	default:
		return "unknown"
	}
}

// Control tells ForEachProperty whether to keep visiting properties.
type Control int

const (
	Continue Control = iota
	Stop
)

// Variant is a single node in the Redfish resource tree. It is a value-ish
// reference type: cheap to pass around, immutable once constructed. Object
// and Iterable variants carry a backpointer (uri) to the resource they were
// fetched from, used by EnsureFresh; properties resolved off a reference
// (`{"@odata.id": "..."}`) trigger a lazy follow-through fetch the first
// time they're navigated, never eagerly.
type Variant struct {
	kind  Kind
	obj   map[string]any
	items []any
	scalar any

	uri string
	svc *Service
}

func nullVariant(svc *Service) *Variant {
	return &Variant{kind: KindNull, svc: svc}
}

// Kind reports this variant's shape.
func (v *Variant) Kind() Kind { return v.kind }

// URI returns the @odata.id this variant was fetched from or carries as its
// own identity, or "" if it has none (an inline nested object, a scalar, or
// null).
func (v *Variant) URI() string { return v.uri }

// Scalar returns the underlying scalar value and true, or nil/false if this
// variant is not a scalar.
func (v *Variant) Scalar() (any, bool) {
	if v.kind != KindScalar {
		return nil, false
	}
	return v.scalar, true
}

// Len reports the member count of an Iterable variant, or 0 otherwise.
func (v *Variant) Len() int {
	if v.kind != KindIterable {
		return 0
	}
	return len(v.items)
}

// Property resolves a named property off an Object variant. A missing
// property, or navigating into a non-Object, silently yields a Null variant
// rather than an error. This is the "resolution miss" the planner treats as
// a dead branch, not a failure (the ambient edge-case behavior for naming a
// property that doesn't exist).
func (v *Variant) Property(ctx context.Context, name string) (*Variant, error) {
	if v.kind != KindObject {
		return nullVariant(v.svc), nil
	}
	raw, ok := v.obj[name]
	if !ok {
		return nullVariant(v.svc), nil
	}
	return v.svc.resolveValue(ctx, v.uri, raw)
}

// Index resolves the i'th member of an Iterable variant. An out-of-range
// index, or indexing into a non-Iterable, yields a Null variant.
func (v *Variant) Index(ctx context.Context, i int) (*Variant, error) {
	if v.kind != KindIterable || i < 0 || i >= len(v.items) {
		return nullVariant(v.svc), nil
	}
	return v.svc.resolveValue(ctx, v.uri, v.items[i])
}

// Each returns a lazy, ordered, non-restartable iterator over an Iterable
// variant's members. Each call to Next resolves exactly one member,
// following a `@odata.id` reference with a fetch if the member is a
// reference rather than inline data. Calling Each on a non-Iterable yields
// an iterator that is immediately exhausted.
func (v *Variant) Each() *MemberIterator {
	return &MemberIterator{v: v}
}

// ForEachProperty visits every property of an Object variant in a stable
// (sorted) key order, resolving each value before calling f. It stops early
// if f returns Stop. Calling this on a non-Object is a no-op.
func (v *Variant) ForEachProperty(ctx context.Context, f func(name string, val *Variant) Control) error {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val, err := v.svc.resolveValue(ctx, v.uri, v.obj[k])
		if err != nil {
			return err
		}
		if f(k, val) == Stop {
			return nil
		}
	}
	return nil
}

// EnsureFresh re-resolves the resource this variant was fetched from through
// the cache and returns the variant reconstructed from the resulting body:
// while the cached entry is within maxAge no fetch happens, and once it has
// aged past maxAge exactly one refetch is made. It fails with
// ErrNoOdataIdForRefetch if this variant has no backing URI (an inline
// nested object, a scalar, or null), since there is nothing to refetch.
func (v *Variant) EnsureFresh(ctx context.Context) (*Variant, error) {
	if v.uri == "" {
		return nil, ErrNoOdataIdForRefetch
	}
	e, err := v.svc.cache.EnsureFresh(ctx, v.uri)
	if err != nil {
		return nil, err
	}
	return v.svc.classifyEntry(e)
}
