package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showCommand prints the (optionally selected) tree of a document.
func (c *CLI) showCommand() *cobra.Command {
	var exprs []string

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the view tree of a document",
		Long: `Print the view tree of a JSON or TOML document.

Constraints narrow the tree before printing:
  viewstack show plots.json -q time=1 -q 'channel=r,g' -q 'x=0:5'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, format, err := readDocument(args[0])
			if err != nil {
				return err
			}

			runner, store, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := runner.Select(ctx, doc, format, exprs)
			if err != nil {
				return err
			}

			fmt.Println(treeView(res.Node))
			printStats(res.Nodes, res.Cached)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&exprs, "query", "q", nil, "constraint name=value, name=a,b or name=lo:hi (repeatable)")
	cmd.ValidArgsFunction = documentArgs
	return cmd
}
