package cli

import (
	"os"

	"github.com/spf13/cobra"

	vio "github.com/matzehuels/viewstack/pkg/io"
)

// selectCommand narrows a document and writes the result as a document.
func (c *CLI) selectCommand() *cobra.Command {
	var (
		exprs  []string
		output string
	)

	cmd := &cobra.Command{
		Use:   "select FILE",
		Short: "Select part of a view tree and write it out",
		Long: `Apply constraints to a document and write the selected tree.

Without -o the result is printed to stdout as JSON. The output format
follows the extension of -o (json or toml).`,
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

			prog := newProgress(loggerFromContext(ctx), "queries", len(exprs))
			res, err := runner.Select(ctx, doc, format, exprs)
			if err != nil {
				return err
			}

			if output == "" {
				return vio.WriteJSON(res.Node, os.Stdout)
			}
			if err := vio.Export(res.Node, output); err != nil {
				return err
			}
			prog.done("Selection written", "nodes", res.Nodes, "cached", res.Cached)
			printSuccess("Selected %d nodes", res.Nodes)
			printFile(output)
			printStats(res.Nodes, res.Cached)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&exprs, "query", "q", nil, "constraint name=value, name=a,b or name=lo:hi (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml)")
	cmd.ValidArgsFunction = documentArgs
	return cmd
}
