package query

import (
	"github.com/pkg/errors"

	"github.com/openredfish/dellicius/cache"
	"github.com/openredfish/dellicius/transport"
)

// ErrNilNormalizer is the one programmer-contract violation that is fatal
// to constructing a Planner. Every other failure kind is branch-local.
var ErrNilNormalizer = errors.New("query: normalizer must not be nil")

// isBranchFailure reports whether err is the kind of failure that should
// drop only the current traversal branch (a TransportFail, in spec terms)
// rather than abort the Run.
func isBranchFailure(err error) bool {
	return errors.Is(err, transport.ErrTransportFail) || errors.Is(err, cache.ErrStatus)
}
