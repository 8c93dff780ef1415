package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/render/nodelink"
)

// renderCommand draws a document as a node-link diagram.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		exprs    []string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a view tree as a node-link diagram",
		Long: `Render the (optionally selected) view tree with Graphviz.

The format follows the extension of -o: dot, svg, pdf or png. PDF and PNG
need rsvg-convert on the PATH.`,
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

			prog := newProgress(loggerFromContext(ctx), "format", outputFormat(output))
			data, cached, err := runner.Render(ctx, doc, format, exprs, outputFormat(output), nodelink.Options{Detailed: detailed})
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			prog.done("Rendered", "cached", cached)
			printSuccess("Rendered %s", outputFormat(output))
			printFile(output)
			printStats(0, cached)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&exprs, "query", "q", nil, "constraint name=value, name=a,b or name=lo:hi (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "view.svg", "output file (.dot, .svg, .pdf or .png)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include dimensions and entry counts in labels")
	cmd.ValidArgsFunction = documentArgs
	return cmd
}
