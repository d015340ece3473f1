package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ledgerline/expensectl/pkg/expenses"
)

// analyticsCommand creates the analytics command group.
func (c *CLI) analyticsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Aggregate spending figures",
	}

	cmd.AddCommand(c.summaryCommand())
	cmd.AddCommand(c.byCategoryCommand())
	cmd.AddCommand(c.byPeriodCommand())
	cmd.AddCommand(c.trendsCommand())

	return cmd
}

// summaryCommand creates the "analytics summary" subcommand.
func (c *CLI) summaryCommand() *cobra.Command {
	var filter expenses.SummaryFilter

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count, total, average, minimum and maximum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.api()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var resp *expenses.SummaryResponse
			err = c.withSpinner(ctx, "Computing summary...", func() (err error) {
				resp, err = client.AnalyticsSummary(ctx, &filter)
				return err
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.jsonOutput() {
				return printJSON(w, resp)
			}
			s := resp.Data
			fmt.Fprintln(w, StyleTitle.Render("Summary"))
			printKeyValue(w, "Expenses", strconv.Itoa(s.TotalExpenses))
			printKeyValue(w, "Total", money(s.TotalAmount))
			printKeyValue(w, "Average", money(s.AverageAmount))
			printKeyValue(w, "Minimum", money(s.MinAmount))
			printKeyValue(w, "Maximum", money(s.MaxAmount))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&filter.StartDate, "start", "", "earliest date (YYYY-MM-DD)")
	f.StringVar(&filter.EndDate, "end", "", "latest date (YYYY-MM-DD)")
	f.StringVarP(&filter.Category, "category", "c", "", "category name")

	return cmd
}

// byCategoryCommand creates the "analytics by-category" subcommand.
func (c *CLI) byCategoryCommand() *cobra.Command {
	var (
		dates     expenses.DateRange
		chartPath string
	)

	cmd := &cobra.Command{
		Use:     "by-category",
		Short:   "Spending per category",
		Example: `  expensectl analytics by-category --start 2024-01-01 --chart spending.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.api()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var resp *expenses.CategoryBreakdownResponse
			err = c.withSpinner(ctx, "Grouping by category...", func() (err error) {
				resp, err = client.AnalyticsByCategory(ctx, &dates)
				return err
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.jsonOutput() {
				if err := printJSON(w, resp); err != nil {
					return err
				}
			} else {
				printBreakdown(w, resp.Data)
			}

			if chartPath != "" {
				if err := writePieChart(chartPath, resp.Data); err != nil {
					return err
				}
				loggerFromContext(ctx).Info("chart written", "path", chartPath)
				if !c.jsonOutput() {
					printFile(w, chartPath)
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dates.StartDate, "start", "", "earliest date (YYYY-MM-DD)")
	f.StringVar(&dates.EndDate, "end", "", "latest date (YYYY-MM-DD)")
	f.StringVar(&chartPath, "chart", "", "also write a PNG pie chart to this file")

	return cmd
}

// byPeriodCommand creates the "analytics by-period" subcommand.
func (c *CLI) byPeriodCommand() *cobra.Command {
	var (
		filter expenses.PeriodFilter
		period string
	)

	cmd := &cobra.Command{
		Use:   "by-period",
		Short: "Spending per day, week, month or year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePeriod(period)
			if err != nil {
				return err
			}
			filter.Period = p
			return c.runDocument(cmd, "Grouping by period...", func(ctx context.Context, client *expenses.Client) (expenses.Document, error) {
				return client.AnalyticsByPeriod(ctx, &filter)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&period, "period", "p", "", "daily, weekly, monthly or yearly")
	f.StringVar(&filter.StartDate, "start", "", "earliest date (YYYY-MM-DD)")
	f.StringVar(&filter.EndDate, "end", "", "latest date (YYYY-MM-DD)")
	f.StringVarP(&filter.Category, "category", "c", "", "category name")

	return cmd
}

// trendsCommand creates the "analytics trends" subcommand.
func (c *CLI) trendsCommand() *cobra.Command {
	var dates expenses.DateRange

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Spending trend over time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDocument(cmd, "Computing trends...", func(ctx context.Context, client *expenses.Client) (expenses.Document, error) {
				return client.AnalyticsTrends(ctx, &dates)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&dates.StartDate, "start", "", "earliest date (YYYY-MM-DD)")
	f.StringVar(&dates.EndDate, "end", "", "latest date (YYYY-MM-DD)")

	return cmd
}

// categoriesCommand creates the categories command.
func (c *CLI) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories the server knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.api()
			if err != nil {
				return err
			}
			resp, err := client.Categories(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.jsonOutput() {
				return printJSON(w, resp)
			}
			rows := make([][]string, 0, len(resp.Data))
			for _, cat := range resp.Data {
				rows = append(rows, []string{cat.Name, cat.Description})
			}
			printTable(w, []string{"NAME", "DESCRIPTION"}, rows)
			return nil
		},
	}
}

func printBreakdown(w io.Writer, data []expenses.CategoryBreakdown) {
	if len(data) == 0 {
		printInfo(w, "No expenses in this range")
		return
	}
	rows := make([][]string, 0, len(data))
	for _, b := range data {
		rows = append(rows, []string{
			b.Category,
			strconv.Itoa(b.Count),
			money(b.TotalAmount),
			money(b.AverageAmount),
			percent(b.Percentage),
		})
	}
	printTable(w, []string{"CATEGORY", "COUNT", "TOTAL", "AVERAGE", "SHARE"}, rows, 1, 2, 3, 4)
}

// documentCall performs one request returning a server-defined document.
type documentCall func(ctx context.Context, client *expenses.Client) (expenses.Document, error)

// runDocument prints a server-defined document as indented JSON, whatever
// the output format, since its shape is not known to the client.
func (c *CLI) runDocument(cmd *cobra.Command, message string, call documentCall) error {
	client, err := c.api()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	var doc expenses.Document
	err = c.withSpinner(ctx, message, func() (err error) {
		doc, err = call(ctx, client)
		return err
	})
	if err != nil {
		return err
	}
	return writeDocument(cmd.OutOrStdout(), doc)
}

func writeDocument(w io.Writer, doc expenses.Document) error {
	out, err := doc.Indent()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// createFile opens path for writing, truncating it.
func createFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}
