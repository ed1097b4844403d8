package errors

import (
	stderrors "errors"

	"github.com/sunholo/corelang/internal/ast"
	"github.com/sunholo/corelang/internal/schema"
)

// Report is the canonical structured error type for the pipeline. The
// type, HIR, lowering and MIR phases return one of these, wrapped as an
// error via WrapReport so it survives ordinary Go error handling while
// staying recoverable through AsReport.
type Report struct {
	Schema   string         `json:"schema"`             // always schema.ErrorV1
	Code     string         `json:"code"`                // one of the constants in codes.go
	Phase    string         `json:"phase"`                // one of the Phase* constants
	Message  string         `json:"message"`
	Position *ast.Pos       `json:"position,omitempty"`  // source location, when known
	Data     map[string]any `json:"data,omitempty"`       // structured fields (type strings, names, ...)
}

// ReportError wraps a Report so it satisfies the error interface while
// remaining recoverable through errors.As.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Position != nil {
		return e.Rep.Position.String() + ": " + e.Rep.Code + ": " + e.Rep.Message
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a *Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if stderrors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error, so callers can recover the
// structured Code/Phase/Data via AsReport. The errors that the async
// stack, compileconfig and iface build themselves are not Reports.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report for the given phase/code/message, the common case
// with no extra structured data.
func New(phase, code, message string, pos *ast.Pos) *Report {
	return &Report{
		Schema:   schema.ErrorV1,
		Code:     code,
		Phase:    phase,
		Message:  message,
		Position: pos,
	}
}

// WithData attaches structured fields (e.g. the two canonical type strings
// in a TypesNotMatched report) and returns the same Report for chaining.
func (r *Report) WithData(data map[string]any) *Report {
	r.Data = data
	return r
}

// ToJSON serializes the report deterministically (sorted keys); compact
// selects single-line output.
func (r *Report) ToJSON(compact bool) (string, error) {
	data, err := schema.MarshalDeterministic(r)
	if err != nil {
		return "", err
	}
	if compact {
		return string(data), nil
	}
	pretty, err := schema.FormatJSON(data)
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}
