// Package token defines lexical token kinds for SystemVerilog/Verilog.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Keywords, operators and punctuation share one Kind each (Keyword, Op);
//     the parser and the CST distinguish them by Text, the way tree-sitter
//     names anonymous nodes by their literal.
//   - Comments and compiler directives are ordinary tokens (Comment,
//     Directive). The parser skips them and reinserts them into the tree.
package token
