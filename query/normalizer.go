package query

import (
	"context"

	"github.com/openredfish/dellicius/redfish"
)

// Normalizer projects a matched Redfish variant, together with the
// subquery whose terminal predicate it satisfied, into a Row. It is opaque
// to the planner: pure, reentrant, borrowed for the duration of a Run and
// never owned by it. A normalization failure drops the row silently; it is
// never fatal to the enclosing Run.
type Normalizer interface {
	Normalize(ctx context.Context, v *redfish.Variant, sq *Subquery) (Row, error)
}

// NormalizerFunc adapts a plain function to a Normalizer.
type NormalizerFunc func(ctx context.Context, v *redfish.Variant, sq *Subquery) (Row, error)

func (f NormalizerFunc) Normalize(ctx context.Context, v *redfish.Variant, sq *Subquery) (Row, error) {
	return f(ctx, v, sq)
}
