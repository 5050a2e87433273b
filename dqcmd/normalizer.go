package dqcmd

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/openredfish/dellicius/query"
	"github.com/openredfish/dellicius/redfish"
)

// PropertyNormalizer is the CLI's concrete Normalizer: it projects each of
// a subquery's PropertyDescriptors into a row by walking a dot-delimited
// Path off the matched variant. A descriptor that resolves to null (or to a
// property that doesn't exist) is recorded as nil; one that resolves to an
// object or a collection fails normalization for that row alone.
type PropertyNormalizer struct{}

func (PropertyNormalizer) Normalize(ctx context.Context, v *redfish.Variant, sq *query.Subquery) (query.Row, error) {
	row := query.Row{}
	for _, pd := range sq.Properties {
		val := v
		for _, part := range strings.Split(pd.Path, ".") {
			if part == "" {
				continue
			}
			next, err := val.Property(ctx, part)
			if err != nil {
				return nil, err
			}
			val = next
		}
		switch val.Kind() {
		case redfish.KindScalar:
			scalar, _ := val.Scalar()
			row[pd.Name] = scalar
		case redfish.KindNull:
			row[pd.Name] = nil
		default:
			return nil, errors.Errorf("dqcmd: property %q (path %q) did not resolve to a scalar", pd.Name, pd.Path)
		}
	}
	return row, nil
}

var _ query.Normalizer = PropertyNormalizer{}
