package expenses

import (
	"encoding/json"
	"testing"
)

func TestExpenseConsistent(t *testing.T) {
	deletedAt := "2024-03-01T10:00:00.000Z"
	garbage := "yesterday"

	tests := []struct {
		name string
		e    Expense
		want bool
	}{
		{"live", Expense{}, true},
		{"live with timestamp", Expense{DeletedAt: &deletedAt}, false},
		{"deleted", Expense{IsDeleted: true, DeletedAt: &deletedAt}, true},
		{"deleted without timestamp", Expense{IsDeleted: true}, false},
		{"deleted with bad timestamp", Expense{IsDeleted: true, DeletedAt: &garbage}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Consistent(); got != tt.want {
				t.Errorf("Consistent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpenseDecodesNullDeletedAt(t *testing.T) {
	var e Expense
	if err := json.Unmarshal([]byte(`{"_id":"1","isDeleted":false,"deletedAt":null}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.ID != "1" || e.DeletedAt != nil {
		t.Errorf("unexpected expense: %+v", e)
	}
}

func TestExpenseInputOmitsEmptyDate(t *testing.T) {
	data, err := json.Marshal(ExpenseInput{Description: "coffee", Amount: 3.5, Category: "food"})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"description":"coffee","amount":3.5,"category":"food"}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestPaginationHasNext(t *testing.T) {
	if !(Pagination{Total: 25, Page: 1, Limit: 10, Pages: 3}).HasNext() {
		t.Error("page 1 of 3 should have a next page")
	}
	if (Pagination{Total: 25, Page: 3, Limit: 10, Pages: 3}).HasNext() {
		t.Error("last page should not have a next page")
	}
}

func TestDocument(t *testing.T) {
	var resp ExpenseListResponse
	body := `{"success":true,"data":[],"pagination":{},"filters":{"category":"food"}}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Filters.IsNull() {
		t.Fatal("filters should be captured")
	}

	var filters map[string]string
	if err := resp.Filters.Decode(&filters); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if filters["category"] != "food" {
		t.Errorf("filters = %v", filters)
	}

	pretty, err := resp.Filters.Indent()
	if err != nil {
		t.Fatalf("Indent() error: %v", err)
	}
	if pretty != "{\n  \"category\": \"food\"\n}" {
		t.Errorf("Indent() = %q", pretty)
	}
}

func TestDocumentAbsent(t *testing.T) {
	var resp ExpenseListResponse
	if err := json.Unmarshal([]byte(`{"success":true}`), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Filters.IsNull() {
		t.Error("missing filters should be null")
	}

	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"success":true,"data":null,"pagination":{"total":0,"page":0,"limit":0,"pages":0}}`; string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}

	var null Document
	if s, _ := null.Indent(); s != "null" {
		t.Errorf("Indent() of empty document = %q", s)
	}
}

func TestParseTime(t *testing.T) {
	for _, s := range []string{"2024-01-15T08:30:00.000Z", "2024-01-15T08:30:00Z", "2024-01-15"} {
		ts, err := ParseTime(s)
		if err != nil {
			t.Errorf("ParseTime(%q) error: %v", s, err)
			continue
		}
		if ts.Year() != 2024 || ts.Day() != 15 {
			t.Errorf("ParseTime(%q) = %v", s, ts)
		}
	}
	if _, err := ParseTime("15/01/2024"); err == nil {
		t.Error("ParseTime should reject non-ISO dates")
	}
}
