package testkit

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCheckOutput(t *testing.T) {
	cases := []struct {
		name    string
		in, out string
		wantErr string
	}{
		{name: "ok", in: "module  m;endmodule", out: "module m;\nendmodule\n"},
		{name: "blank", in: " \n\t\n", out: ""},
		{name: "blank with output", in: "\n", out: "\n", wantErr: "blank input"},
		{name: "lost token", in: "a b", out: "a\n", wantErr: "content differs"},
		{name: "no newline", in: "a", out: "a", wantErr: "newline"},
		{name: "trailing blank", in: "a", out: "a\n\n", wantErr: "blank line"},
		{name: "nbsp is content", in: "a b", out: "a b\n", wantErr: "content differs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckOutput([]byte(tc.in), []byte(tc.out))
			switch {
			case tc.wantErr == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tc.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tc.wantErr)):
				t.Fatalf("error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestCheckStable(t *testing.T) {
	same := func(b []byte) ([]byte, error) { return b, nil }
	if err := CheckStable([]byte("a\n"), same); err != nil {
		t.Fatal(err)
	}
	grow := func(b []byte) ([]byte, error) { return append(bytes.Clone(b), 'x'), nil }
	if err := CheckStable([]byte("a\nb\n"), grow); err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err = %v", err)
	}
	boom := errors.New("boom")
	fail := func([]byte) ([]byte, error) { return nil, boom }
	if err := CheckStable([]byte("a\n"), fail); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
