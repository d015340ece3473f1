package expenses

import (
	"bytes"
	"encoding/json"
	"time"
)

// Expense is a single expense record as stored by the server.
//
// IsDeleted and DeletedAt move together: a live expense has a nil DeletedAt,
// a soft-deleted one carries the deletion timestamp. Dates are kept as the
// ISO strings the server sends; use [ParseTime] to convert them.
type Expense struct {
	ID          string  `json:"_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	IsDeleted   bool    `json:"isDeleted"`
	DeletedAt   *string `json:"deletedAt"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// Consistent reports whether the soft-delete fields agree with each other:
// not deleted means no deletion time, deleted means a parseable one.
func (e Expense) Consistent() bool {
	if !e.IsDeleted {
		return e.DeletedAt == nil
	}
	if e.DeletedAt == nil {
		return false
	}
	_, err := ParseTime(*e.DeletedAt)
	return err == nil
}

// ExpenseInput is the write-side shape used by create and update.
// The server assigns the identifier and soft-delete fields.
type ExpenseInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date,omitempty"`
}

// Pagination describes one page of a listing.
// The server keeps Pages equal to ceil(Total/Limit).
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// HasNext reports whether a page follows the current one.
func (p Pagination) HasNext() bool { return p.Page < p.Pages }

// ExpenseListResponse is returned by the listing endpoints.
// Filters echoes the filters the server applied, when it sends them.
type ExpenseListResponse struct {
	Success    bool       `json:"success"`
	Data       []Expense  `json:"data"`
	Pagination Pagination `json:"pagination"`
	Filters    Document   `json:"filters,omitempty"`
}

// ExpenseResponse is returned by endpoints that act on a single expense.
type ExpenseResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Data    Expense `json:"data"`
}

// AnalyticsSummary aggregates the amounts of the matching expenses.
type AnalyticsSummary struct {
	TotalExpenses int     `json:"totalExpenses"`
	TotalAmount   float64 `json:"totalAmount"`
	AverageAmount float64 `json:"averageAmount"`
	MinAmount     float64 `json:"minAmount"`
	MaxAmount     float64 `json:"maxAmount"`
}

// CategoryBreakdown aggregates the amounts of one category.
type CategoryBreakdown struct {
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	TotalAmount   float64 `json:"totalAmount"`
	AverageAmount float64 `json:"averageAmount"`
	MinAmount     float64 `json:"minAmount"`
	MaxAmount     float64 `json:"maxAmount"`
	Percentage    float64 `json:"percentage"`
}

// Category is a category known to the server.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SummaryResponse wraps [AnalyticsSummary].
type SummaryResponse struct {
	Success bool             `json:"success"`
	Data    AnalyticsSummary `json:"data"`
	Filters Document         `json:"filters,omitempty"`
}

// CategoryBreakdownResponse wraps the per-category analytics.
// Summary is server-defined and left undecoded.
type CategoryBreakdownResponse struct {
	Success bool                `json:"success"`
	Data    []CategoryBreakdown `json:"data"`
	Summary Document            `json:"summary"`
}

// CategoriesResponse lists the available categories.
type CategoriesResponse struct {
	Success bool       `json:"success"`
	Data    []Category `json:"data"`
}

// Document is an opaque, server-defined JSON value.
// It keeps the raw bytes so nothing is lost; call [Document.Decode] to map
// it onto a concrete type when the caller knows the shape.
type Document json.RawMessage

// MarshalJSON returns the raw document, or null when empty.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a copy of data.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = append((*d)[:0], data...)
	return nil
}

// Decode unmarshals the document into v.
func (d Document) Decode(v any) error {
	return json.Unmarshal(d, v)
}

// IsNull reports whether the document is absent or JSON null.
func (d Document) IsNull() bool {
	t := bytes.TrimSpace(d)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Indent returns the document pretty-printed with two-space indentation.
func (d Document) Indent() (string, error) {
	if d.IsNull() {
		return "null", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, d, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseTime parses the ISO-8601 timestamps the server emits,
// with or without fractional seconds, and plain dates.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
