package dqcmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/openredfish/dellicius/clock"
	"github.com/openredfish/dellicius/config"
	"github.com/openredfish/dellicius/internal/iter"
	"github.com/openredfish/dellicius/jqfilter"
	"github.com/openredfish/dellicius/query"
)

func newRunCmd(ctx context.Context, cfg *config.Config) *cobra.Command {
	var filterExpr string
	cmd := &cobra.Command{
		Use:   "run <query-file>",
		Short: "runs a YAML query file against the configured Redfish service and prints the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuery(args[0])
			if err != nil {
				return err
			}
			svc, closeDurable, err := buildService(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeDurable()

			planner, err := query.NewPlanner(PropertyNormalizer{})
			if err != nil {
				return err
			}
			result, err := planner.Run(ctx, svc, clock.New(), q)
			if err != nil {
				return err
			}
			if filterExpr != "" {
				result, err = applyFilter(result, filterExpr)
				if err != nil {
					return err
				}
			}
			return printResult(cmd, result)
		},
	}
	cmd.Flags().StringVar(&filterExpr, "filter", "", "jq expression applied to every output row")
	return cmd
}

func applyFilter(result *query.Result, expr string) (*query.Result, error) {
	code, err := jqfilter.Compile(expr)
	if err != nil {
		return nil, err
	}
	filtered := &query.Result{
		QueryIDs:           result.QueryIDs,
		StartTimestamp:     result.StartTimestamp,
		EndTimestamp:       result.EndTimestamp,
		SubqueryOutputByID: map[string]*query.SubqueryOutput{},
	}
	for id, out := range result.SubqueryOutputByID {
		rows, err := iter.Collect[query.Row](context.Background(), jqfilter.New(jqfilter.Rows(out), code), len(out.DataSet))
		if err != nil {
			return nil, err
		}
		filtered.SubqueryOutputByID[id] = &query.SubqueryOutput{DataSet: rows}
	}
	return filtered, nil
}

func printResult(cmd *cobra.Command, result *query.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
