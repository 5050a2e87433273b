package query

import (
	"context"

	"github.com/brendoncarroll/stdctx/logctx"

	"github.com/openredfish/dellicius/clock"
	"github.com/openredfish/dellicius/internal/iter"
	"github.com/openredfish/dellicius/redfish"
)

// Planner is the Query Planner (C7).
type Planner struct {
	normalizer Normalizer
}

// NewPlanner builds a Planner that invokes n on every terminal match. A nil
// normalizer is a programmer-contract violation, not a branch-local
// failure, so it is rejected here rather than deferred to the first Run.
func NewPlanner(n Normalizer) (*Planner, error) {
	if n == nil {
		return nil, ErrNilNormalizer
	}
	return &Planner{normalizer: n}, nil
}

// Run compiles q's subqueries, fetches the service root, and traverses the
// resource tree on their behalf. It always returns a populated Result; the
// only fatal error is a failure to acquire the root variant.
func (p *Planner) Run(ctx context.Context, svc *redfish.Service, clk clock.Clock, q Query) (*Result, error) {
	result := newResult(q.QueryID)
	result.StartTimestamp = clk.Now()

	handles := make([]Handle, 0, len(q.Subqueries))
	for i := range q.Subqueries {
		h := newHandle(ctx, &q.Subqueries[i])
		if !h.valid {
			continue
		}
		handles = append(handles, h)
	}

	root, err := svc.GetRoot(ctx)
	if err != nil {
		result.EndTimestamp = clk.Now()
		return result, err
	}

	// Applying filter to the root is skipped entirely: traversal begins by
	// seeking next_node() off the root, never by qualifying the root itself.
	if err := p.runRecursive(ctx, result, root, handles); err != nil {
		result.EndTimestamp = clk.Now()
		return result, err
	}

	result.EndTimestamp = clk.Now()
	return result, nil
}

// runRecursive deduplicates handles by next node name, dispatches one
// fetch per unique node, fans out over collection members, and recurses.
func (p *Planner) runRecursive(ctx context.Context, result *Result, variant *redfish.Variant, handles []Handle) error {
	byNode := map[string][]Handle{}
	for _, h := range handles {
		node, ok := h.NextNode()
		if !ok {
			continue
		}
		byNode[node] = append(byNode[node], h)
	}
	if len(byNode) == 0 {
		return nil
	}

	for node, group := range byNode {
		child, err := variant.Property(ctx, node)
		if err != nil {
			if isBranchFailure(err) {
				logctx.Infof(ctx, "dropping branch at node %q: %v", node, err)
				continue
			}
			return err
		}

		switch child.Kind() {
		case redfish.KindObject:
			if err := p.qualifyEachSubquery(ctx, result, child, group); err != nil {
				return err
			}
		case redfish.KindIterable:
			if err := p.fanOutMembers(ctx, result, child, group); err != nil {
				return err
			}
		default:
			// Scalar or Null: the node exists but is not an object, or
			// doesn't exist at all. ResolutionMiss; the branch dies
			// silently.
			continue
		}
	}
	return nil
}

func (p *Planner) fanOutMembers(ctx context.Context, result *Result, collection *redfish.Variant, handles []Handle) error {
	it := collection.Each()
	var member *redfish.Variant
	for {
		err := it.Next(ctx, &member)
		if iter.IsEOS(err) {
			return nil
		}
		if err != nil {
			if isBranchFailure(err) {
				logctx.Infof(ctx, "dropping collection member: %v", err)
				continue
			}
			return err
		}
		if err := p.qualifyEachSubquery(ctx, result, member, handles); err != nil {
			return err
		}
	}
}

// qualifyEachSubquery partitions handles by Filter(variant): terminal
// matches are normalized into result rows, live branches recurse, dead
// branches are dropped.
func (p *Planner) qualifyEachSubquery(ctx context.Context, result *Result, variant *redfish.Variant, handles []Handle) error {
	var qualified []Handle
	for _, h := range handles {
		res, next := h.Filter(variant)
		switch res {
		case EndOfRedpath:
			row, err := p.normalizer.Normalize(ctx, variant, h.subquery)
			if err != nil {
				logctx.Infof(ctx, "normalization failed for subquery %q: %v", h.subquery.SubqueryID, err)
				continue
			}
			result.appendRow(h.subquery.SubqueryID, row)
		case Continue:
			qualified = append(qualified, next)
		case EndByPredicate:
			// dead branch, dropped
		}
	}
	if len(qualified) == 0 {
		return nil
	}
	return p.runRecursive(ctx, result, variant, qualified)
}
