package trace

import "time"

type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string { return lookupName(kindNames[:], int(k)) }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole CLI run
	ScopePass                    // parse, render, write of one file
	ScopeFile                    // one formatted file
	ScopeNode                    // one CST node inside render
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file", ScopeNode: "node"}

func (s Scope) String() string { return lookupName(scopeNames[:], int(s)) }

func (s Scope) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func lookupName(names []string, i int) string {
	if i > 0 && i < len(names) {
		return names[i]
	}
	return "unknown"
}

// Event is one trace record. The struct tags define the NDJSON format.
type Event struct {
	Time     time.Time         `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     Kind              `json:"kind"`
	Scope    Scope             `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`             // pass name, node kind
	Path     string            `json:"path,omitempty"`   // file being formatted
	Detail   string            `json:"detail,omitempty"` // outcome or error text
	Extra    map[string]string `json:"extra,omitempty"`
}
