package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openredfish/dellicius/clock"
	"github.com/openredfish/dellicius/transport"
)

type fakeTransport struct {
	bodies map[string][]byte
	gets   map[string]int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{bodies: map[string][]byte{}, gets: map[string]int{}}
}

func (f *fakeTransport) Get(ctx context.Context, path string) (*transport.Response, error) {
	f.gets[path]++
	body, ok := f.bodies[path]
	if !ok {
		return &transport.Response{Code: 404, Body: []byte(`{}`)}, nil
	}
	return &transport.Response{Code: 200, Body: body}, nil
}

func (f *fakeTransport) Post(ctx context.Context, path string, body []byte) (*transport.Response, error) {
	return nil, nil
}
func (f *fakeTransport) Patch(ctx context.Context, path string, body []byte) (*transport.Response, error) {
	return nil, nil
}
func (f *fakeTransport) Delete(ctx context.Context, path string) (*transport.Response, error) {
	return nil, nil
}

var _ transport.Transport = (*fakeTransport)(nil)

// Property 1/2, scenario S5: idempotence within TTL, exactly one refetch
// after expiry.
func TestCachedGetExpiryCounts(t *testing.T) {
	ft := newFakeTransport()
	ft.bodies["/u"] = []byte(`{"a": 1}`)
	fc := clock.NewFake(time.Unix(0, 0))
	g := New(ft, fc, 60*time.Second)

	_, err := g.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 1, ft.gets["/u"])

	fc.Advance(1 * time.Second)
	_, err = g.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 1, ft.gets["/u"])

	fc.Advance(60 * time.Second)
	_, err = g.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 2, ft.gets["/u"])
}

// Property 7: fragment-URI identity.
func TestFragmentURIsShareOneFetch(t *testing.T) {
	ft := newFakeTransport()
	ft.bodies["/X"] = []byte(`{"a": 1, "b": 2}`)
	fc := clock.NewFake(time.Unix(0, 0))
	g := New(ft, fc, time.Minute)

	_, err := g.CachedGet(context.Background(), "/X#/A")
	require.NoError(t, err)
	_, err = g.CachedGet(context.Background(), "/X#/B")
	require.NoError(t, err)
	require.Equal(t, 1, ft.gets["/X"])
}

// Property 8: EnsureFresh performs no additional fetch right after a fresh
// fetch, and exactly one after TTL expiry.
func TestEnsureFreshContract(t *testing.T) {
	ft := newFakeTransport()
	ft.bodies["/u"] = []byte(`{"a": 1}`)
	fc := clock.NewFake(time.Unix(0, 0))
	g := New(ft, fc, time.Minute)

	_, err := g.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	_, err = g.EnsureFresh(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 1, ft.gets["/u"])

	fc.Advance(2 * time.Minute)
	_, err = g.EnsureFresh(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 2, ft.gets["/u"])
}

func TestUncachedGetNeverPopulatesCache(t *testing.T) {
	ft := newFakeTransport()
	ft.bodies["/u"] = []byte(`{"a": 1}`)
	fc := clock.NewFake(time.Unix(0, 0))
	g := New(ft, fc, time.Minute)

	_, err := g.UncachedGet(context.Background(), "/u")
	require.NoError(t, err)
	_, err = g.UncachedGet(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 2, ft.gets["/u"])
}

func TestCachedGetNonSuccessStatusFails(t *testing.T) {
	ft := newFakeTransport()
	fc := clock.NewFake(time.Unix(0, 0))
	g := New(ft, fc, time.Minute)

	_, err := g.CachedGet(context.Background(), "/missing")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStatus)
}

func TestClearAllEvictsEntries(t *testing.T) {
	ft := newFakeTransport()
	ft.bodies["/u"] = []byte(`{"a": 1}`)
	fc := clock.NewFake(time.Unix(0, 0))
	g := New(ft, fc, time.Minute)

	_, err := g.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	g.ClearAll()

	_, err = g.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 2, ft.gets["/u"])
}

// durableStore is a minimal in-memory Durable used to exercise the overlay
// without pulling in internal/cachestore's sqlite dependency.
type durableStore struct {
	entries map[string]durableEntry
}

type durableEntry struct {
	body       []byte
	insertedAt time.Time
}

func newDurableStore() *durableStore {
	return &durableStore{entries: map[string]durableEntry{}}
}

func (d *durableStore) Put(ctx context.Context, uri string, body []byte, insertedAt time.Time) error {
	d.entries[uri] = durableEntry{body: body, insertedAt: insertedAt}
	return nil
}

func (d *durableStore) Get(ctx context.Context, uri string) ([]byte, time.Time, bool, error) {
	e, ok := d.entries[uri]
	if !ok {
		return nil, time.Time{}, false, nil
	}
	return e.body, e.insertedAt, true, nil
}

var _ Durable = (*durableStore)(nil)

func TestDurableOverlaySkipsTransportOnFreshHit(t *testing.T) {
	ft := newFakeTransport()
	ft.bodies["/u"] = []byte(`{"a": 1}`)
	fc := clock.NewFake(time.Unix(0, 0))
	durable := newDurableStore()

	g1 := New(ft, fc, time.Minute, WithDurable(durable))
	_, err := g1.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 1, ft.gets["/u"])

	// A second Getter over the same durable store, as if a process restart
	// reused the on-disk cache, should not need a fresh transport fetch.
	g2 := New(ft, fc, time.Minute, WithDurable(durable))
	_, err = g2.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 1, ft.gets["/u"], "durable hit must not cause a transport fetch")

	fc.Advance(2 * time.Minute)
	_, err = g2.CachedGet(context.Background(), "/u")
	require.NoError(t, err)
	require.Equal(t, 2, ft.gets["/u"], "durable entries are still subject to maxAge")
}
