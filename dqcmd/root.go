// Package dqcmd is the cobra command tree for dellicius-query, mirroring
// the teacher's bpmcmd: a root command with persistent config flags and a
// flat set of subcommands.
package dqcmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/openredfish/dellicius/config"
)

// NewCmd creates the root command.
func NewCmd(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:   "dellicius-query",
		Short: "dellicius-query runs declarative multi-subquery path queries against a Redfish service",
	}
	cfg := config.RegisterFlags(root)
	root.AddCommand(newRunCmd(ctx, cfg))
	return root
}
