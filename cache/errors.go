package cache

import "github.com/pkg/errors"

// ErrStatus is the design-level TransportFail error kind raised when the
// backend answers with a non-2xx status: the transport completed the call,
// but the call itself failed.
var ErrStatus = errors.New("cache: non-2xx status from backend")

func statusError(code int, uri string) error {
	return errors.Wrapf(ErrStatus, "GET %s: status %d", uri, code)
}
