package cli

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerline/expensectl/pkg/errors"
	"github.com/ledgerline/expensectl/pkg/expenses"
	"github.com/ledgerline/expensectl/pkg/query"
)

// parseAmount reads a decimal amount such as "12.50".
// Anything that is not a finite decimal number is rejected before a request is made.
func parseAmount(flag, raw string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "--%s: not a number: %q", flag, raw)
	}
	return d.InexactFloat64(), nil
}

// optionalAmount returns nil unless the flag was given on the command line.
func optionalAmount(cmd *cobra.Command, flag, raw string) (*float64, error) {
	if !cmd.Flags().Changed(flag) {
		return nil, nil
	}
	v, err := parseAmount(flag, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// optionalInt returns nil unless the flag was given on the command line.
func optionalInt(cmd *cobra.Command, flag string, v int) *int {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}

func parseSortOrder(raw string) (expenses.SortOrder, error) {
	switch o := expenses.SortOrder(strings.ToLower(raw)); o {
	case "", expenses.SortAsc, expenses.SortDesc:
		return o, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "--sort-order must be asc or desc, got %q", raw)
	}
}

func parsePeriod(raw string) (expenses.Period, error) {
	switch p := expenses.Period(strings.ToLower(raw)); p {
	case "", expenses.Daily, expenses.Weekly, expenses.Monthly, expenses.Yearly:
		return p, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "--period must be daily, weekly, monthly or yearly, got %q", raw)
	}
}

// parseParams turns repeated key=value flags into ordered query parameters.
func parseParams(pairs []string) (query.Params, error) {
	params := make(query.Params, 0, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--param must be key=value, got %q", pair)
		}
		params = params.Add(key, value)
	}
	return params, nil
}

// idArg validates the single expense id argument.
func idArg(args []string) (string, error) {
	if err := errors.ValidateID(args[0]); err != nil {
		return "", err
	}
	return args[0], nil
}
