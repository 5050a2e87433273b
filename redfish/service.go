package redfish

import (
	"context"
	"encoding/json"

	"github.com/openredfish/dellicius/cache"
)

// Service is the Redfish Interface's entry point: it turns cache.Entry
// bodies into Variant trees and holds the cache.Getter every Variant fetches
// through. It is the only thing in this package that decodes JSON.
type Service struct {
	cache    *cache.Getter
	rootPath string
}

// NewService builds a Service rooted at rootPath (conventionally
// "/redfish/v1") over the given cache.Getter.
func NewService(getter *cache.Getter, rootPath string) *Service {
	return &Service{cache: getter, rootPath: rootPath}
}

// GetRoot fetches the service root resource.
func (s *Service) GetRoot(ctx context.Context) (*Variant, error) {
	return s.CachedGetUri(ctx, s.rootPath)
}

// CachedGetUri fetches uri through the cache, respecting its freshness
// window.
func (s *Service) CachedGetUri(ctx context.Context, uri string) (*Variant, error) {
	e, err := s.cache.CachedGet(ctx, uri)
	if err != nil {
		return nil, err
	}
	return s.classifyEntry(e)
}

// UncachedGetUri fetches uri directly, bypassing the cache entirely.
func (s *Service) UncachedGetUri(ctx context.Context, uri string) (*Variant, error) {
	e, err := s.cache.UncachedGet(ctx, uri)
	if err != nil {
		return nil, err
	}
	return s.classifyEntry(e)
}

func (s *Service) classifyEntry(e *cache.Entry) (*Variant, error) {
	var raw any
	if err := json.Unmarshal(e.Body, &raw); err != nil {
		return nil, err
	}
	return classify(s, e.URI, raw), nil
}

// resolveValue turns a raw decoded-JSON value found inline in a parent
// resource (a property value, a collection member, an array element) into
// a Variant. A pure reference object (exactly `{"@odata.id": "..."}`) is
// followed through with a fetch; anything else is classified in place with
// no network access.
func (s *Service) resolveValue(ctx context.Context, parentURI string, raw any) (*Variant, error) {
	if m, ok := raw.(map[string]any); ok {
		if id, ok := m["@odata.id"].(string); ok && len(m) == 1 {
			return s.CachedGetUri(ctx, id)
		}
	}
	_ = parentURI // inline values carry their own @odata.id, if any; see classify.
	return classify(s, "", raw), nil
}

// classify turns a decoded JSON value into a Variant. fetchedFromURI is the
// URI this value was fetched from, if it is the top-level body of a fetch;
// for inline values found while navigating a parent resource, it is "".
// Either way, an object's own "@odata.id" property (if present) wins as the
// variant's URI when fetchedFromURI is empty, so inline embedded resources
// that do carry their own self-link remain EnsureFresh-able.
func classify(svc *Service, fetchedFromURI string, raw any) *Variant {
	switch x := raw.(type) {
	case nil:
		return nullVariant(svc)
	case map[string]any:
		uri := fetchedFromURI
		if uri == "" {
			if id, ok := x["@odata.id"].(string); ok {
				uri = id
			}
		}
		if members, ok := x["Members"]; ok {
			return &Variant{kind: KindIterable, items: toSlice(members), uri: uri, svc: svc}
		}
		return &Variant{kind: KindObject, obj: x, uri: uri, svc: svc}
	case []any:
		return &Variant{kind: KindIterable, items: x, uri: fetchedFromURI, svc: svc}
	default:
		return &Variant{kind: KindScalar, scalar: raw, svc: svc}
	}
}

func toSlice(v any) []any {
	s, ok := v.([]any)
	if !ok {
		return nil
	}
	return s
}
