// Package dialect guesses which supported language a buffer is written in
// when no file name says so (stdin, editor buffers).
//
// Detection only scores evidence: identifiers and preprocessor lines vote for
// a language and the classifier picks the strongest. It never parses.
package dialect
