// Package expenses provides an HTTP client for the expense tracker API.
//
// # Overview
//
// [Client] exposes one method per remote endpoint: listing, CRUD,
// soft-delete and restore, analytics, export and health. Each method builds
// the URL, sends exactly one request and decodes the JSON answer into a
// typed response.
//
// # Usage
//
//	client := expenses.NewClient("http://localhost:5000", nil)
//
//	list, err := client.ListExpenses(ctx, &expenses.ExpenseFilter{
//	    Category: "food",
//	    Page:     expenses.Int(1),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range list.Data {
//	    fmt.Println(e.Description, e.Amount)
//	}
//
// # Soft Delete
//
// [Client.DeleteExpense] only marks an expense as deleted; it then shows up
// in [Client.ListDeletedExpenses] and can be brought back with
// [Client.RestoreExpense]. [Client.PermanentlyDeleteExpense] removes it.
//
// # Query Parameters
//
// Filters are serialized with package query. Listing and export endpoints
// drop unset and empty values only; analytics endpoints and the deleted
// listing drop every falsy value, including 0 and false.
//
// # Exports
//
// [Client.ExportJSON] downloads the export. [Client.ExportCSVURL] only
// computes the download URL and never touches the network, so the caller
// can stream it to a file or hand it to a browser.
//
// # Errors
//
// Errors come straight from package httputil: errors.Is(err,
// httputil.ErrNotFound) for unknown ids, httputil.ErrStatus for other non-2xx
// answers and httputil.ErrNetwork for transport failures. Nothing is retried.
// Response shapes are not validated; a field the server leaves out simply
// keeps its zero value.
//
// # Opaque Payloads
//
// Endpoints whose payload the server does not pin down (period analytics,
// trends, JSON export, health) return a [Document] holding the raw JSON.
package expenses
