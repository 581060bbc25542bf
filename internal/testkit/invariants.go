// Package testkit holds checks shared by formatter tests and fuzz harnesses.
package testkit

import (
	"bytes"
	"fmt"
)

// CheckOutput verifies the properties every formatted result must have
// against its input:
//  1. the non-whitespace content is identical;
//  2. non-empty output ends in exactly one newline;
//  3. output of empty or all-whitespace input is empty.
func CheckOutput(in, out []byte) error {
	a, b := dropSpace(in), dropSpace(out)
	if !bytes.Equal(a, b) {
		at := 0
		for at < len(a) && at < len(b) && a[at] == b[at] {
			at++
		}
		return fmt.Errorf("content differs after %d non-space bytes: input has %q, output has %q",
			at, clip(a[at:]), clip(b[at:]))
	}
	if len(a) == 0 {
		if len(out) != 0 {
			return fmt.Errorf("blank input produced %q", clip(out))
		}
		return nil
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		return fmt.Errorf("output does not end in a newline")
	}
	if bytes.HasSuffix(out, []byte("\n\n")) {
		return fmt.Errorf("output ends in a blank line")
	}
	return nil
}

// CheckStable formats out again via format and requires a fixed point.
func CheckStable(out []byte, format func([]byte) ([]byte, error)) error {
	again, err := format(out)
	if err != nil {
		return fmt.Errorf("second pass: %w", err)
	}
	if !bytes.Equal(out, again) {
		line := 1 + bytes.Count(out[:commonPrefix(out, again)], []byte("\n"))
		return fmt.Errorf("second pass differs from line %d:\nfirst:\n%s\nsecond:\n%s", line, out, again)
	}
	return nil
}

// dropSpace removes ASCII whitespace only; other Unicode spaces are content.
func dropSpace(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			out = append(out, c)
		}
	}
	return out
}

func commonPrefix(a, b []byte) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func clip(b []byte) []byte {
	if len(b) > 40 {
		return b[:40]
	}
	return b
}
