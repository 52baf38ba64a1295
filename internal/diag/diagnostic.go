package diag

import (
	"cclex/internal/source"
)

// Note is a secondary location attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
