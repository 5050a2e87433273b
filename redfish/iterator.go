package redfish

import (
	"context"

	"github.com/openredfish/dellicius/internal/iter"
)

// MemberIterator walks an Iterable variant's members lazily, one fetch (at
// most) per Next call. It is non-restartable: once exhausted, it stays
// exhausted.
type MemberIterator struct {
	v   *Variant
	idx int
}

var _ iter.Iterator[*Variant] = (*MemberIterator)(nil)

func (it *MemberIterator) Next(ctx context.Context, dst **Variant) error {
	if it.v.kind != KindIterable || it.idx >= len(it.v.items) {
		return iter.EOS()
	}
	raw := it.v.items[it.idx]
	it.idx++
	mv, err := it.v.svc.resolveValue(ctx, it.v.uri, raw)
	if err != nil {
		return err
	}
	*dst = mv
	return nil
}
