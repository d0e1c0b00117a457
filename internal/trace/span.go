package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next event sequence number, shared by all tracers.
func NextSeq() uint64 { return seqCounter.Add(1) }

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer returns ctx carrying t; a nil t disables tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// parentID returns the id of the innermost span opened through ctx.
func parentID(ctx context.Context) uint64 {
	if ctx != nil {
		if id, ok := ctx.Value(spanKey{}).(uint64); ok {
			return id
		}
	}
	return 0
}

// Span is an open interval of work. A Span whose scope is filtered out by
// the tracer level is inert: End and WithExtra only measure time.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Start opens a span below the one recorded in ctx. The returned context
// makes the new span the parent of later Start calls.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	sp := &Span{started: time.Now()}
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return ctx, sp
	}
	sp.tracer = t
	sp.id = spanCounter.Add(1)
	sp.parent = parentID(ctx)
	sp.scope = scope
	sp.name = name
	t.Emit(sp.event(KindSpanBegin, sp.started, ""))
	return context.WithValue(ctx, spanKey{}, sp.id), sp
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	ev := &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	return ev
}

// WithExtra attaches key=value to the span's end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// End closes the span and returns how long it was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	if s.tracer != nil {
		s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	}
	return now.Sub(s.started)
}

// ID is 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point records an instant event inside the current span.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parentID(ctx),
		Name:     name,
		Detail:   detail,
	})
}
