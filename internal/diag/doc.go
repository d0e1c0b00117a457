// Package diag defines the diagnostic model shared by every analysis phase.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by
//     the lexer and the declaration extractor.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting or IO. Rendering lives in
// internal/diagfmt; collection per file is done by internal/driver.
//
// # Error policy
//
// Malformed input never aborts a scan. Every problem the lexer or the
// extractor runs into becomes a Diagnostic attached to the (possibly partial)
// result:
//
//   - LEX codes: unknown bytes, unterminated comments and literals. The lexer
//     resynchronises at the next newline or at end of file.
//   - SYN codes: unbalanced delimiters (extraction is truncated at the point
//     of imbalance) and ambiguous declarations (skipped).
//   - IO codes: files that could not be read in batch mode.
//
// Diagnostic is the central record: Severity, Code, Message, Primary span
// and optional Notes pointing at related spans (e.g. "opened here").
package diag
