package transport

import "github.com/pkg/errors"

// ErrTransportFail is the design-level TransportFail error kind: the
// transport could not complete the call at all, as opposed to the call
// completing with a non-2xx status.
var ErrTransportFail = errors.New("transport: request failed")

func fail(cause error) error {
	return errors.Wrapf(ErrTransportFail, "%v", cause)
}
