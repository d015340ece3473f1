package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/ledgerline/expensectl/pkg/errors"
	"github.com/ledgerline/expensectl/pkg/httputil"
)

// PrintError writes a one-line explanation of err to w, with the server's
// message underneath when the API returned one.
func PrintError(w io.Writer, err error) {
	printError(w, "%s", ErrorMessage(err))

	var se *httputil.StatusError
	if stderrors.As(err, &se) {
		if msg := serverMessage(se.Body); msg != "" {
			printDetail(w, "server: %s", msg)
		}
	}
}

// ErrorMessage describes err for humans, based on its classification.
func ErrorMessage(err error) string {
	switch errors.Classify(err) {
	case errors.ErrCodeNotFound:
		return "not found: " + err.Error()
	case errors.ErrCodeNetwork:
		return "cannot reach the expense API: " + err.Error()
	case errors.ErrCodeHTTPStatus:
		return "request failed: " + err.Error()
	case errors.ErrCodeCanceled:
		return "interrupted"
	case errors.ErrCodeInternal:
		return err.Error()
	default:
		return errors.UserMessage(err)
	}
}

// serverMessage extracts the "message" or "error" field the API puts in
// error bodies, falling back to the trimmed body text.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
