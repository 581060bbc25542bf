package dialect

import "fmt"

// Kind is a language a buffer may be written in.
type Kind uint8

const (
	Unknown Kind = iota
	SystemVerilog
	C

	kindCount
)

func (k Kind) String() string {
	switch k {
	case SystemVerilog:
		return "systemverilog"
	case C:
		return "c"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}
