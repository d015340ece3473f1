package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/expensectl/pkg/errors"
	"github.com/ledgerline/expensectl/pkg/expenses"
)

// exportCommand creates the export command group.
func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses as JSON or CSV",
		Long: `Export expenses as JSON or CSV.

Filters are passed as repeated --param key=value flags and sent in the order
given, for example --param category=food --param startDate=2024-01-01.`,
	}

	cmd.AddCommand(c.exportJSONCommand())
	cmd.AddCommand(c.exportCSVCommand())

	return cmd
}

// exportJSONCommand creates the "export json" subcommand.
func (c *CLI) exportJSONCommand() *cobra.Command {
	var (
		params []string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Download the JSON export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseParams(params)
			if err != nil {
				return err
			}
			client, err := c.api()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var doc expenses.Document
			err = c.withSpinner(ctx, "Exporting...", func() (err error) {
				doc, err = client.ExportJSON(ctx, q)
				return err
			})
			if err != nil {
				return err
			}

			if out == "" {
				return writeDocument(cmd.OutOrStdout(), doc)
			}
			f, err := createFile(out)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", out)
			}
			if err := writeDocument(f, doc); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Export written")
			printFile(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "filter as key=value (repeatable)")
	cmd.Flags().StringVar(&out, "out", "", "write to file instead of stdout")

	return cmd
}

// exportCSVCommand creates the "export csv" subcommand. It only prints the
// download link; nothing is requested.
func (c *CLI) exportCSVCommand() *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Print the CSV download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseParams(params)
			if err != nil {
				return err
			}
			client, err := c.api()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), client.ExportCSVURL(q))
			return err
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "filter as key=value (repeatable)")

	return cmd
}
