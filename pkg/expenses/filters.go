package expenses

import "github.com/ledgerline/expensectl/pkg/query"

// SortOrder selects ascending or descending order for listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Period is the bucket size for period analytics.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// ExpenseFilter holds the listing options of [Client.ListExpenses].
//
// Pointer fields distinguish "unset" from zero: a nil Page is not sent,
// while Page set to 0 is. Empty strings are never sent.
type ExpenseFilter struct {
	Page           *int
	Limit          *int
	StartDate      string
	EndDate        string
	MinAmount      *float64
	MaxAmount      *float64
	Category       string
	Search         string
	SortBy         string
	SortOrder      SortOrder
	IncludeDeleted *bool
}

// Params implements [query.Source].
func (f *ExpenseFilter) Params() query.Params {
	return query.Params{
		{Key: "page", Value: f.Page},
		{Key: "limit", Value: f.Limit},
		{Key: "startDate", Value: f.StartDate},
		{Key: "endDate", Value: f.EndDate},
		{Key: "minAmount", Value: f.MinAmount},
		{Key: "maxAmount", Value: f.MaxAmount},
		{Key: "category", Value: f.Category},
		{Key: "search", Value: f.Search},
		{Key: "sortBy", Value: f.SortBy},
		{Key: "sortOrder", Value: string(f.SortOrder)},
		{Key: "includeDeleted", Value: f.IncludeDeleted},
	}
}

// PageFilter selects a page of deleted expenses. Zero values are not sent.
type PageFilter struct {
	Page  int
	Limit int
}

// Params implements [query.Source].
func (f *PageFilter) Params() query.Params {
	return query.Params{
		{Key: "page", Value: f.Page},
		{Key: "limit", Value: f.Limit},
	}
}

// SummaryFilter restricts [Client.AnalyticsSummary].
type SummaryFilter struct {
	StartDate string
	EndDate   string
	Category  string
}

// Params implements [query.Source].
func (f *SummaryFilter) Params() query.Params {
	return query.Params{
		{Key: "startDate", Value: f.StartDate},
		{Key: "endDate", Value: f.EndDate},
		{Key: "category", Value: f.Category},
	}
}

// DateRange restricts analytics to a date window.
type DateRange struct {
	StartDate string
	EndDate   string
}

// Params implements [query.Source].
func (f *DateRange) Params() query.Params {
	return query.Params{
		{Key: "startDate", Value: f.StartDate},
		{Key: "endDate", Value: f.EndDate},
	}
}

// PeriodFilter restricts [Client.AnalyticsByPeriod].
type PeriodFilter struct {
	Period    Period
	StartDate string
	EndDate   string
	Category  string
}

// Params implements [query.Source].
func (f *PeriodFilter) Params() query.Params {
	return query.Params{
		{Key: "period", Value: string(f.Period)},
		{Key: "startDate", Value: f.StartDate},
		{Key: "endDate", Value: f.EndDate},
		{Key: "category", Value: f.Category},
	}
}

// Int returns a pointer to v, for optional filter fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for optional filter fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for optional filter fields.
func Bool(v bool) *bool { return &v }
