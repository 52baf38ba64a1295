// Package diag defines the diagnostic model shared by the lexer, the driver
// and the CLI.
//
// The lexer never fails: malformed input becomes an Invalid token. When a
// Reporter is configured, the lexer additionally reports one Diagnostic per
// invalid token so that callers can render messages without re-scanning.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable ID (LEX1001, IO4001, ...).
//   - Message – short human oriented text.
//   - Primary – the source.Span the problem refers to.
//   - Notes – optional secondary spans with extra context.
//
// Package diag does not format or print anything; rendering lives in
// internal/diagfmt. Producers emit through a Reporter (BagReporter collects
// into a bounded Bag, DedupReporter filters repeats), which keeps the lexer
// independent from storage.
package diag
