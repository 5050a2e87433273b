// Package transport mediates raw REST verbs against a Redfish-speaking
// service over an abstract channel. The planner only ever issues Get; the
// other verbs exist so the contract is complete for external callers.
package transport

import (
	"context"
	"io"
	"net/http"
)

// Response is the result of a transport call.
type Response struct {
	Code   int
	Body   []byte
	Header http.Header
}

// Transport issues raw REST verbs and returns a status-bearing result, or a
// TransportFail if the call could not be completed at all (network error,
// timeout, context cancellation).
type Transport interface {
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body []byte) (*Response, error)
	Patch(ctx context.Context, path string, body []byte) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)
}

// drain reads and closes an http.Response body, capping it so a misbehaving
// server can't exhaust memory.
func drain(rc io.ReadCloser, limit int64) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, limit))
}
