// Package httputil provides the HTTP transport primitive used by API clients.
//
// # Overview
//
// The package has three parts:
//
//   - [Doer]: the interface a transport must satisfy (*http.Client does)
//   - [Requester]: builds a request, sends it once, checks the status and
//     decodes the JSON body
//   - [StatusError]: the error returned for any non-2xx response
//
// # Errors
//
// Failures are returned as-is to the caller; nothing is retried or
// suppressed. Errors wrap one of three sentinels so callers can branch with
// errors.Is:
//
//   - [ErrNetwork]: the transport failed (DNS, refused connection, timeout)
//   - [ErrNotFound]: the server answered 404
//   - [ErrStatus]: the server answered any other non-2xx status
//
// Use errors.As with *StatusError to reach the status code and raw body.
//
// # Timeouts
//
// [NewHTTPClient] takes a timeout; zero means none. Cancellation is carried
// by the request context, which [Requester] passes straight through.
//
// # Observability
//
// Each request reports to [observability.HTTP]. The default hooks do
// nothing, so the package never logs on its own.
//
// [observability.HTTP]: github.com/ledgerline/expensectl/pkg/observability.HTTP
package httputil
