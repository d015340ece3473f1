package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/ledgerline/expensectl/pkg/errors"
	"github.com/ledgerline/expensectl/pkg/expenses"
	"github.com/ledgerline/expensectl/pkg/httputil"
	"github.com/ledgerline/expensectl/pkg/query"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"3.50", 3.5, false},
		{" 12 ", 12, false},
		{"0", 0, false},
		{"-4.25", -4.25, false},
		{"1e2", 100, false},
		{"", 0, true},
		{"ten", 0, true},
		{"NaN", 0, true},
		{"3,50", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAmount("amount", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAmount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parseAmount(%q) wrong code: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseParamsKeepsOrder(t *testing.T) {
	got, err := parseParams([]string{"category=food", "startDate=2024-01-01", "search=a=b", "empty="})
	if err != nil {
		t.Fatal(err)
	}
	if q := query.Encode(got, query.OmitEmpty); q != "category=food&startDate=2024-01-01&search=a%3Db" {
		t.Errorf("encoded = %q", q)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("parseParams(%q) should fail", bad)
		}
	}
}

func TestParseSortOrderAndPeriod(t *testing.T) {
	if o, err := parseSortOrder("ASC"); err != nil || o != expenses.SortAsc {
		t.Errorf("parseSortOrder(ASC) = %q, %v", o, err)
	}
	if o, err := parseSortOrder(""); err != nil || o != "" {
		t.Errorf("parseSortOrder(\"\") = %q, %v", o, err)
	}
	if _, err := parseSortOrder("up"); err == nil {
		t.Error("parseSortOrder(up) should fail")
	}
	if p, err := parsePeriod("Weekly"); err != nil || p != expenses.Weekly {
		t.Errorf("parsePeriod(Weekly) = %q, %v", p, err)
	}
	if _, err := parsePeriod("hourly"); err == nil {
		t.Error("parsePeriod(hourly) should fail")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		prefix string
	}{
		{"canceled", fmt.Errorf("%w: GET x: %w", httputil.ErrNetwork, context.Canceled), "interrupted"},
		{"status", &httputil.StatusError{Method: "GET", URL: "http://x/health", StatusCode: 500}, "request failed: GET http://x/health"},
		{"structured", errors.New(errors.ErrCodeInvalidInput, "bad amount"), "bad amount"},
		{"plain", fmt.Errorf("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorMessage(tt.err)
			if len(got) < len(tt.prefix) || got[:len(tt.prefix)] != tt.prefix {
				t.Errorf("ErrorMessage() = %q, want prefix %q", got, tt.prefix)
			}
		})
	}
}

func TestServerMessage(t *testing.T) {
	tests := map[string]string{
		`{"success":false,"message":"Expense not found"}`: "Expense not found",
		`{"error":"validation failed"}`:                   "validation failed",
		"  upstream timeout \n":                           "upstream timeout",
	}
	for body, want := range tests {
		if got := serverMessage([]byte(body)); got != want {
			t.Errorf("serverMessage(%q) = %q, want %q", body, got, want)
		}
	}
}
