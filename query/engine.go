package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/openredfish/dellicius/clock"
	"github.com/openredfish/dellicius/redfish"
)

// Engine is the QueryEngine façade: it sits above the Planner and runs a
// batch of independent queries against one Redfish service, handing back
// one Result per query. The planner itself carries no per-run mutable
// state; everything a Run needs lives in the Result it builds and the
// Handles it threads through recursion. That makes it safe for one Engine
// to serve concurrent RunAll calls, and RunAll itself fans its batch out
// concurrently rather than running queries one at a time.
type Engine struct {
	svc     *redfish.Service
	clk     clock.Clock
	planner *Planner
}

// NewEngine builds an Engine over svc, using clk as the time source for
// every Run it performs.
func NewEngine(svc *redfish.Service, clk clock.Clock, planner *Planner) *Engine {
	return &Engine{svc: svc, clk: clk, planner: planner}
}

// RunAll runs every query in queries concurrently, returning one Result per
// query in the same order as the input. If any query's Run fails fatally
// (root variant acquisition failed), RunAll returns that error alongside
// whatever results the other queries managed to produce.
func (e *Engine) RunAll(ctx context.Context, queries []Query) ([]*Result, error) {
	results := make([]*Result, len(queries))
	eg, ctx := errgroup.WithContext(ctx)
	for i := range queries {
		i := i
		eg.Go(func() error {
			r, err := e.planner.Run(ctx, e.svc, e.clk, queries[i])
			results[i] = r
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
