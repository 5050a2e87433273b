// Package jqfilter lets a caller project or filter already-assembled
// DelliciusQueryResult rows with a jq expression. It sits strictly outside
// the RedPath grammar: the planner's predicate dispatch is frozen at "*",
// and this package never touches a Subquery Handle or a Variant. It only
// ever sees the flat Row maps the Normalizer already produced.
package jqfilter

import (
	"context"

	"github.com/itchyny/gojq"
	"github.com/pkg/errors"

	"github.com/openredfish/dellicius/internal/iter"
	"github.com/openredfish/dellicius/query"
)

// Compile parses and compiles a jq expression. The expression must
// evaluate to a single boolean per row; Filter rejects anything else at
// run time.
func Compile(expr string) (*gojq.Code, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "jqfilter: parsing %q", expr)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, errors.Wrapf(err, "jqfilter: compiling %q", expr)
	}
	return code, nil
}

// Filter is a lazy iterator over query.Row that only emits rows for which
// code evaluates to true.
type Filter struct {
	inner iter.Iterator[query.Row]
	code  *gojq.Code
}

var _ iter.Iterator[query.Row] = (*Filter)(nil)

// New wraps inner with code, adapted from the teacher's JQFilter.
func New(inner iter.Iterator[query.Row], code *gojq.Code) *Filter {
	return &Filter{inner: inner, code: code}
}

func (it *Filter) Next(ctx context.Context, dst *query.Row) error {
	for {
		if err := it.inner.Next(ctx, dst); err != nil {
			return err
		}
		allow, err := it.evaluate(*dst)
		if err != nil {
			return err
		}
		if allow {
			return nil
		}
	}
}

func (it *Filter) evaluate(row query.Row) (bool, error) {
	jqit := it.code.Run(map[string]any(row))
	out, ok := jqit.Next()
	if !ok {
		return false, errors.New("jqfilter: expression produced no value")
	}
	if err, ok := out.(error); ok {
		return false, errors.Wrap(err, "jqfilter: expression error")
	}
	if second, ok := jqit.Next(); ok {
		return false, errors.Errorf("jqfilter: expression produced a second value: %v", second)
	}
	allow, ok := out.(bool)
	if !ok {
		return false, errors.Errorf("jqfilter: expression must return a boolean, got %v", out)
	}
	return allow, nil
}

// Rows adapts a SubqueryOutput's DataSet into an iter.Iterator[query.Row],
// the shape Filter and the rest of internal/iter expect.
func Rows(out *query.SubqueryOutput) iter.Iterator[query.Row] {
	if out == nil {
		return &rowSlice{}
	}
	return &rowSlice{rows: out.DataSet}
}

type rowSlice struct {
	rows []query.Row
	idx  int
}

func (s *rowSlice) Next(ctx context.Context, dst *query.Row) error {
	if s.idx >= len(s.rows) {
		return iter.EOS()
	}
	*dst = s.rows[s.idx]
	s.idx++
	return nil
}
