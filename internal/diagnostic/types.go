package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"datamix-tools/internal/common"
)

// Error is a fail-fast failure raised by any phase of the compiler.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Key is the mixture name, data ID or document key the failure is about (if any).
	Key string
	// Message is the human-readable description.
	Message string
	// Suggestions are close matches for a misspelt key or ID.
	Suggestions []string
}

// Errorf builds an Error of the given kind.
func Errorf(kind Kind, key, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Key:     key,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithSuggestions returns e with the suggestions attached.
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if first, ok := common.First(e.Suggestions); ok {
		if common.IsSingle(e.Suggestions) {
			msg = fmt.Sprintf("%s (did you mean %q?)", msg, first)
		} else {
			msg = fmt.Sprintf("%s (did you mean one of %s?)", msg, quoteAll(e.Suggestions))
		}
	}

	return msg
}

// KindOf returns the Kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}

	return 0
}

// IsKind reports whether err carries a diagnostic of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Diagnostics holds the non-fatal findings of a run.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single non-fatal message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Level names the mixture level this relates to (if any).
	Level string
	// Key identifies the entry this relates to (if any).
	Key string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return common.UnknownStr
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, level, key string, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Level:       level,
		Key:         key,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, level, key string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Level:    level,
		Key:      key,
	})
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return !common.IsEmpty(d.Warnings)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Level != "" {
		prefix = append(prefix, "["+d.Level+"]")
	}

	if d.Key != "" {
		prefix = append(prefix, d.Key)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if !common.IsEmpty(d.Suggestions) {
		msg = fmt.Sprintf("%s (did you mean %s?)", msg, quoteAll(d.Suggestions))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

func quoteAll(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}

	return strings.Join(quoted, ", ")
}
