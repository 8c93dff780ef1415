package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// dimsCommand tabulates the dimensions of a document.
func (c *CLI) dimsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dims FILE",
		Short: "List the dimensions used in a document",
		Args:  cobra.ExactArgs(1),
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

			root, err := runner.Load(ctx, doc, format)
			if err != nil {
				return err
			}
			fmt.Println(dimsTable(root))
			return nil
		},
		ValidArgsFunction: documentArgs,
	}
}
