package expenses

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ledgerline/expensectl/pkg/httputil"
	"github.com/ledgerline/expensectl/pkg/query"
)

// Client provides access to the expense tracker API.
//
// Every method issues at most one request and returns whatever the transport
// produced: the decoded body on success, the transport or status error
// otherwise. Nothing is cached or retried.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *httputil.Requester
	baseURL string
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:5000"). A trailing slash is ignored.
//
// doer performs the HTTP round trips; pass nil to use a plain *http.Client
// without timeout.
func NewClient(baseURL string, doer httputil.Doer) *Client {
	return &Client{
		http:    httputil.NewRequester(doer),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// ListExpenses fetches a page of expenses. A nil filter sends no parameters.
// Unset and empty filter fields are omitted; zero and false are sent.
func (c *Client) ListExpenses(ctx context.Context, f *ExpenseFilter) (*ExpenseListResponse, error) {
	var resp ExpenseListResponse
	if err := c.http.Get(ctx, c.url("/expenses", f, query.OmitEmpty), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetExpense fetches a single expense.
// A missing id surfaces as an error wrapping [httputil.ErrNotFound].
func (c *Client) GetExpense(ctx context.Context, id string) (*ExpenseResponse, error) {
	return c.expense(ctx, http.MethodGet, expensePath(id), nil)
}

// CreateExpense posts a new expense to /expenses/add.
func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (*ExpenseResponse, error) {
	return c.expense(ctx, http.MethodPost, "/expenses/add", in)
}

// UpdateExpense replaces the writable fields of an expense.
func (c *Client) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (*ExpenseResponse, error) {
	return c.expense(ctx, http.MethodPut, expensePath(id), in)
}

// DeleteExpense soft-deletes an expense. It can be brought back with
// [Client.RestoreExpense].
func (c *Client) DeleteExpense(ctx context.Context, id string) (*ExpenseResponse, error) {
	return c.expense(ctx, http.MethodDelete, expensePath(id), nil)
}

// RestoreExpense clears the soft-delete mark of an expense.
func (c *Client) RestoreExpense(ctx context.Context, id string) (*ExpenseResponse, error) {
	return c.expense(ctx, http.MethodPut, expensePath(id)+"/restore", nil)
}

// PermanentlyDeleteExpense removes an expense for good.
func (c *Client) PermanentlyDeleteExpense(ctx context.Context, id string) (*ExpenseResponse, error) {
	return c.expense(ctx, http.MethodDelete, expensePath(id)+"/permanent", nil)
}

// ListDeletedExpenses fetches a page of soft-deleted expenses.
// Zero page or limit values are not sent.
func (c *Client) ListDeletedExpenses(ctx context.Context, f *PageFilter) (*ExpenseListResponse, error) {
	var resp ExpenseListResponse
	if err := c.http.Get(ctx, c.url("/expenses/deleted/list", f, query.OmitFalsy), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyticsSummary fetches totals over the matching expenses.
func (c *Client) AnalyticsSummary(ctx context.Context, f *SummaryFilter) (*SummaryResponse, error) {
	var resp SummaryResponse
	if err := c.http.Get(ctx, c.url("/analytics/summary", f, query.OmitFalsy), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyticsByCategory fetches the per-category breakdown.
func (c *Client) AnalyticsByCategory(ctx context.Context, f *DateRange) (*CategoryBreakdownResponse, error) {
	var resp CategoryBreakdownResponse
	if err := c.http.Get(ctx, c.url("/analytics/by-category", f, query.OmitFalsy), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyticsByPeriod fetches totals bucketed by period. The payload is
// server-defined and returned undecoded.
func (c *Client) AnalyticsByPeriod(ctx context.Context, f *PeriodFilter) (Document, error) {
	return c.document(ctx, c.url("/analytics/by-period", f, query.OmitFalsy))
}

// AnalyticsTrends fetches spending trends. The payload is returned undecoded.
func (c *Client) AnalyticsTrends(ctx context.Context, f *DateRange) (Document, error) {
	return c.document(ctx, c.url("/analytics/trends", f, query.OmitFalsy))
}

// Categories lists the categories known to the server.
func (c *Client) Categories(ctx context.Context) (*CategoriesResponse, error) {
	var resp CategoriesResponse
	if err := c.http.Get(ctx, c.baseURL+"/analytics/categories", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportJSON downloads the matching expenses as JSON.
// params may be a typed filter or a free-form [query.Params] list.
func (c *Client) ExportJSON(ctx context.Context, params query.Source) (Document, error) {
	return c.document(ctx, c.url("/export/json", params, query.OmitEmpty))
}

// ExportCSVURL returns the download URL of the CSV export.
// It performs no request; the caller fetches or hands out the URL.
func (c *Client) ExportCSVURL(params query.Source) string {
	return c.url("/export/csv", params, query.OmitEmpty)
}

// Health calls the server's health endpoint.
func (c *Client) Health(ctx context.Context) (Document, error) {
	return c.document(ctx, c.baseURL+"/health")
}

func (c *Client) expense(ctx context.Context, method, path string, body any) (*ExpenseResponse, error) {
	var resp ExpenseResponse
	if err := c.http.Do(ctx, method, c.baseURL+path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) document(ctx context.Context, rawURL string) (Document, error) {
	var doc Document
	if err := c.http.Get(ctx, rawURL, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) url(path string, src query.Source, rule query.Rule) string {
	return query.Join(c.baseURL+path, query.EncodeSource(src, rule))
}

// expensePath places id in a single escaped path segment.
func expensePath(id string) string {
	return "/expenses/" + url.PathEscape(id)
}
