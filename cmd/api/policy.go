package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/rbac"
)

func policyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the module access table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPolicy(cmd.OutOrStdout())
		},
	}
}

func printPolicy(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tROLES")

	policy := rbac.Policy()
	for _, m := range model.Modules {
		roles := make([]string, 0, len(policy[m]))
		for _, r := range policy[m] {
			roles = append(roles, string(r))
		}
		fmt.Fprintf(w, "%s\t%s\n", m, strings.Join(roles, ", "))
	}
	return w.Flush()
}
