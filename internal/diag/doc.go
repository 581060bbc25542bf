// Package diag defines the diagnostics produced while preparing a file for
// formatting.
//
// The lexer reports LEX codes, the parsers report SYN codes. A Bag holds the
// diagnostics of one parse; producers write through a Reporter so they do not
// depend on storage. FormatShort renders a Bag one line per entry.
//
// None of these stop formatting: an unparseable region is kept verbatim and
// reported once with SynUnparseable at warning level.
package diag
