package trace

import "time"

// Kind tells span boundaries from instant events.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

var kindNames = map[Kind]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	// ScopeDriver is a whole CLI command.
	ScopeDriver Scope = iota + 1
	// ScopePhase is a pipeline phase: discover, analyze, group, render.
	ScopePhase
	// ScopeFile is per-file processing.
	ScopeFile
	// ScopePass is a pass over one file: lex, extract, classify.
	ScopePass
	// ScopeError marks failures; emitted at every level above off.
	ScopeError
)

var scopeNames = map[Scope]string{
	ScopeDriver: "driver",
	ScopePhase:  "phase",
	ScopeFile:   "file",
	ScopePass:   "pass",
	ScopeError:  "error",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Event is one record in the trace stream. Point events carry no SpanID.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корневых
	Name     string // "analyze", "file:src/main.c", ...
	Detail   string
	Extra    map[string]string
}
