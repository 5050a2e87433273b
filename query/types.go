// Package query implements the Query Planner (C7): it compiles each
// subquery's RedPath into a Subquery Handle (C6), walks the Redfish
// resource tree deduplicating branches by next node name, and assembles a
// DelliciusQueryResult (C9) by invoking a caller-supplied Normalizer (C8)
// on every terminal match.
package query

import "time"

// PropertyDescriptor is consumed only by the Normalizer; the planner never
// inspects it.
type PropertyDescriptor struct {
	Name string
	Path string
}

// Subquery is one element of a Query, carrying its own RedPath and its own
// property projection.
type Subquery struct {
	SubqueryID string
	RedPath    string
	Properties []PropertyDescriptor
}

// Query is the immutable input to a single Run.
type Query struct {
	QueryID    string
	Subqueries []Subquery
}

// Row is a normalized dataset row, the Normalizer's output.
type Row map[string]any

// SubqueryOutput is the per-subquery slice of rows a Run produced.
type SubqueryOutput struct {
	DataSet []Row
}

// Result is the DelliciusQueryResult (C9): the outcome of a single Run.
// Engine.RunAll hands back one Result per query.
type Result struct {
	QueryIDs           []string
	StartTimestamp     time.Time
	EndTimestamp       time.Time
	SubqueryOutputByID map[string]*SubqueryOutput
}

func newResult(queryID string) *Result {
	return &Result{
		QueryIDs:           []string{queryID},
		SubqueryOutputByID: map[string]*SubqueryOutput{},
	}
}

func (r *Result) appendRow(subqueryID string, row Row) {
	out, ok := r.SubqueryOutputByID[subqueryID]
	if !ok {
		out = &SubqueryOutput{}
		r.SubqueryOutputByID[subqueryID] = out
	}
	out.DataSet = append(out.DataSet, row)
}
