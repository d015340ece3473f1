// Package pkg provides the libraries behind expensectl, a client for the
// expense tracker REST API.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [expenses] - The API client: one method per endpoint, typed responses
//  2. [query] - Query-string building with the two empty-value rules
//  3. [httputil] - JSON over HTTP, status classification, transport errors
//  4. [errors] - Structured error codes for the command line
//  5. [observability] - Hooks for tracing requests without a logging dependency
//
// # Architecture
//
// A call flows through the packages like this:
//
//	filter struct (expenses.ExpenseFilter, ...)
//	         ↓
//	    [query] package (drop empty values, encode in order)
//	         ↓
//	    [expenses] package (base URL + path + query)
//	         ↓
//	    [httputil] package (request, status check, JSON decode)
//	         ↓
//	typed response or error
//
// # Quick Start
//
//	client := expenses.NewClient("http://localhost:5000", nil)
//	list, err := client.ListExpenses(ctx, &expenses.ExpenseFilter{Category: "food"})
//	if err != nil {
//	    return err
//	}
//	for _, e := range list.Data {
//	    fmt.Println(e.Description, e.Amount)
//	}
//
// For tests, [expenses/expensetest] serves the whole API from memory.
package pkg
