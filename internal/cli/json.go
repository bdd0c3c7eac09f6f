package cli

import (
	"encoding/json"
	"errors"
	"fmt"
)

// errReported is returned once a JSON error envelope has been written, so
// Execute exits non-zero without printing the error a second time.
var errReported = errors.New("error reported")

// Response is the envelope every --json command writes to stdout.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning is a non-fatal problem, such as an unreadable notes file that was
// treated as empty.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta describes the data: how many notes or spaces it holds and which
// space it came from.
type Meta struct {
	Count int    `json:"count,omitempty"`
	Space string `json:"space,omitempty"`
}

func (a *App) writeResponse(resp Response) {
	resp.Warnings = a.warnings
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

func outputSuccess(a *App, data interface{}, meta *Meta) {
	a.writeResponse(Response{OK: true, Data: data, Meta: meta})
}

// handleError reports err under code. In JSON mode the envelope is written
// here and errReported is returned; otherwise the suggestion is appended
// and the caller prints the result.
func handleError(a *App, code string, err error, suggestion string) error {
	if !a.JSON {
		if suggestion == "" {
			return err
		}
		return fmt.Errorf("%w\n\n%s", err, suggestion)
	}
	a.writeResponse(Response{Error: &ErrorInfo{
		Code:       code,
		Message:    err.Error(),
		Suggestion: suggestion,
	}})
	return errReported
}

func handleErrorMsg(a *App, code, message, suggestion string) error {
	return handleError(a, code, errors.New(message), suggestion)
}
