package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerline/expensectl/pkg/errors"
	"github.com/ledgerline/expensectl/pkg/expenses"
)

// listFlags holds the options for the list command.
type listFlags struct {
	page           int
	limit          int
	startDate      string
	endDate        string
	minAmount      string
	maxAmount      string
	category       string
	search         string
	sortBy         string
	sortOrder      string
	includeDeleted bool
}

// filter builds the request filter, sending only flags the user set.
func (f *listFlags) filter(cmd *cobra.Command) (*expenses.ExpenseFilter, error) {
	order, err := parseSortOrder(f.sortOrder)
	if err != nil {
		return nil, err
	}
	minAmount, err := optionalAmount(cmd, "min", f.minAmount)
	if err != nil {
		return nil, err
	}
	maxAmount, err := optionalAmount(cmd, "max", f.maxAmount)
	if err != nil {
		return nil, err
	}

	filter := &expenses.ExpenseFilter{
		Page:      optionalInt(cmd, "page", f.page),
		Limit:     optionalInt(cmd, "limit", f.limit),
		StartDate: f.startDate,
		EndDate:   f.endDate,
		MinAmount: minAmount,
		MaxAmount: maxAmount,
		Category:  f.category,
		Search:    f.search,
		SortBy:    f.sortBy,
		SortOrder: order,
	}
	if cmd.Flags().Changed("include-deleted") {
		filter.IncludeDeleted = &f.includeDeleted
	}
	return filter, nil
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long: `List expenses, one page at a time.

Only flags given on the command line are sent; the server applies its own
defaults for everything else.`,
		Example: `  expensectl list --category food --sort-by amount --sort-order desc
  expensectl list --start 2024-01-01 --end 2024-01-31 --min 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter(cmd)
			if err != nil {
				return err
			}
			client, err := c.api()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			var resp *expenses.ExpenseListResponse
			err = c.withSpinner(ctx, "Fetching expenses...", func() (err error) {
				resp, err = client.ListExpenses(ctx, filter)
				return err
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d expenses", len(resp.Data)))

			if c.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printExpenseList(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.page, "page", 1, "page number")
	f.IntVar(&flags.limit, "limit", 10, "expenses per page")
	f.StringVar(&flags.startDate, "start", "", "earliest date (YYYY-MM-DD)")
	f.StringVar(&flags.endDate, "end", "", "latest date (YYYY-MM-DD)")
	f.StringVar(&flags.minAmount, "min", "", "minimum amount")
	f.StringVar(&flags.maxAmount, "max", "", "maximum amount")
	f.StringVarP(&flags.category, "category", "c", "", "category name")
	f.StringVarP(&flags.search, "search", "s", "", "text to search in descriptions")
	f.StringVar(&flags.sortBy, "sort-by", "", "field to sort by (date, amount, ...)")
	f.StringVar(&flags.sortOrder, "sort-order", "", "asc or desc")
	f.BoolVar(&flags.includeDeleted, "include-deleted", false, "include soft-deleted expenses")

	return cmd
}

// getCommand creates the get command.
func (c *CLI) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExpense(cmd, args, "", func(ctx context.Context, client *expenses.Client, id string) (*expenses.ExpenseResponse, error) {
				return client.GetExpense(ctx, id)
			})
		},
	}
}

// inputFlags holds the fields of an expense being written.
type inputFlags struct {
	description string
	amount      string
	category    string
	date        string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.description, "description", "d", "", "what the money was spent on")
	fs.StringVarP(&f.amount, "amount", "a", "", "amount, e.g. 12.50")
	fs.StringVarP(&f.category, "category", "c", "", "category name")
	fs.StringVar(&f.date, "date", "", "date of the expense (YYYY-MM-DD, default today)")
}

// apply overwrites the fields of in whose flags were given.
func (f *inputFlags) apply(cmd *cobra.Command, in *expenses.ExpenseInput) error {
	changed := cmd.Flags().Changed
	if changed("description") {
		in.Description = f.description
	}
	if changed("amount") {
		amount, err := parseAmount("amount", f.amount)
		if err != nil {
			return err
		}
		in.Amount = amount
	}
	if changed("category") {
		in.Category = f.category
	}
	if changed("date") {
		in.Date = f.date
	}
	return nil
}

// addCommand creates the add command.
func (c *CLI) addCommand() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record a new expense",
		Example: `  expensectl add -d "Coffee" -a 3.50 -c food`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in expenses.ExpenseInput
			if err := flags.apply(cmd, &in); err != nil {
				return err
			}
			return c.runExpense(cmd, nil, "Expense added", func(ctx context.Context, client *expenses.Client, _ string) (*expenses.ExpenseResponse, error) {
				return client.CreateExpense(ctx, in)
			})
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// updateCommand creates the update command. Fields not given keep their
// current values, so the expense is read before it is written.
func (c *CLI) updateCommand() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:     "update ID",
		Short:   "Change an expense",
		Example: `  expensectl update 65a1f0c2e4b0a1b2c3d4e5f6 --amount 4.20`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, &expenses.ExpenseInput{}); err != nil {
				return err
			}
			return c.runExpense(cmd, args, "Expense updated", func(ctx context.Context, client *expenses.Client, id string) (*expenses.ExpenseResponse, error) {
				current, err := client.GetExpense(ctx, id)
				if err != nil {
					return nil, err
				}
				in := expenses.ExpenseInput{
					Description: current.Data.Description,
					Amount:      current.Data.Amount,
					Category:    current.Data.Category,
					Date:        current.Data.Date,
				}
				if err := flags.apply(cmd, &in); err != nil {
					return nil, err
				}
				return client.UpdateExpense(ctx, id, in)
			})
		},
	}
	flags.register(cmd)

	return cmd
}

// deleteCommand creates the delete command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Move an expense to the trash (soft delete)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExpense(cmd, args, "Expense deleted", func(ctx context.Context, client *expenses.Client, id string) (*expenses.ExpenseResponse, error) {
				return client.DeleteExpense(ctx, id)
			})
		},
	}
}

// restoreCommand creates the restore command.
func (c *CLI) restoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Bring a deleted expense back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExpense(cmd, args, "Expense restored", func(ctx context.Context, client *expenses.Client, id string) (*expenses.ExpenseResponse, error) {
				return client.RestoreExpense(ctx, id)
			})
		},
	}
}

// purgeCommand creates the purge command, which deletes permanently.
func (c *CLI) purgeCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge ID",
		Short: "Delete an expense permanently",
		Long:  `Delete an expense permanently. This cannot be undone; pass --yes to confirm.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				printWarning(cmd.ErrOrStderr(), "purge cannot be undone, re-run with --yes")
				return errors.New(errors.ErrCodeInvalidInput, "purge not confirmed")
			}
			return c.runExpense(cmd, args, "Expense permanently deleted", func(ctx context.Context, client *expenses.Client, id string) (*expenses.ExpenseResponse, error) {
				return client.PermanentlyDeleteExpense(ctx, id)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm permanent deletion")

	return cmd
}

// deletedCommand creates the deleted command, listing the trash.
func (c *CLI) deletedCommand() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "deleted",
		Short: "List soft-deleted expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.api()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var resp *expenses.ExpenseListResponse
			err = c.withSpinner(ctx, "Fetching deleted expenses...", func() (err error) {
				resp, err = client.ListDeletedExpenses(ctx, &expenses.PageFilter{Page: page, Limit: limit})
				return err
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printExpenseList(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (server default when 0)")
	cmd.Flags().IntVar(&limit, "limit", 0, "expenses per page (server default when 0)")

	return cmd
}

// expenseCall performs one single-expense operation.
type expenseCall func(ctx context.Context, client *expenses.Client, id string) (*expenses.ExpenseResponse, error)

// runExpense validates the id argument (if any), runs call and prints the
// resulting expense. A non-empty success message is printed above it.
func (c *CLI) runExpense(cmd *cobra.Command, args []string, success string, call expenseCall) error {
	var id string
	if len(args) > 0 {
		var err error
		if id, err = idArg(args); err != nil {
			return err
		}
	}
	client, err := c.api()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var resp *expenses.ExpenseResponse
	err = c.withSpinner(ctx, "Contacting API...", func() (err error) {
		resp, err = call(ctx, client, id)
		return err
	})
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("expense", "id", resp.Data.ID, "message", resp.Message)

	w := cmd.OutOrStdout()
	if c.jsonOutput() {
		return printJSON(w, resp)
	}
	if success != "" {
		printSuccess(w, "%s", success)
	}
	printExpense(w, resp.Data)
	return nil
}

// =============================================================================
// Rendering
// =============================================================================

func printExpense(w io.Writer, e expenses.Expense) {
	printKeyValue(w, "ID", e.ID)
	printKeyValue(w, "Description", e.Description)
	printKeyValue(w, "Amount", money(e.Amount))
	printKeyValue(w, "Category", e.Category)
	printKeyValue(w, "Date", shortDate(e.Date))
	if e.IsDeleted && e.DeletedAt != nil {
		printKeyValue(w, "Deleted", StyleDeleted.Render(shortDate(*e.DeletedAt)))
	}
}

func printExpenseList(w io.Writer, resp *expenses.ExpenseListResponse) {
	if len(resp.Data) == 0 {
		printInfo(w, "No expenses found")
		return
	}

	total := decimal.Zero
	rows := make([][]string, 0, len(resp.Data))
	for _, e := range resp.Data {
		total = total.Add(decimal.NewFromFloat(e.Amount))
		desc := e.Description
		if e.IsDeleted {
			desc = StyleDeleted.Render(desc)
		}
		rows = append(rows, []string{e.ID, shortDate(e.Date), desc, e.Category, money(e.Amount)})
	}
	printTable(w, []string{"ID", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT"}, rows, 4)

	p := resp.Pagination
	printDetail(w, "page %d of %d · %d expenses · page total %s", p.Page, max(p.Pages, 1), p.Total, total.StringFixed(2))
	if p.HasNext() {
		printDetail(w, "next page: --page %d", p.Page+1)
	}
}

// shortDate renders an ISO timestamp as its calendar date.
// Values that do not parse are shown as sent.
func shortDate(s string) string {
	t, err := expenses.ParseTime(s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}
