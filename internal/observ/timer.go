package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured stretch of a scan. Phases opened with Begin are
// wall-clock intervals; phases fed through Add sum work done by workers.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Count int // >0 только у накопительных фаз
}

func (p Phase) accumulated() bool { return p.Count > 0 }

// Timer collects phases. A nil *Timer is valid and records nothing, so
// callers never check whether timings were requested.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	sums   map[string]int // имя накопительной фазы -> индекс в phases
}

func NewTimer() *Timer {
	return &Timer{sums: make(map[string]int)}
}

// Begin opens a phase and returns a handle for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase returned by Begin. Unknown handles are ignored.
func (t *Timer) End(handle int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if handle < 0 || handle >= len(t.phases) || t.phases[handle].accumulated() {
		return
	}
	p := &t.phases[handle]
	p.Dur, p.Note = time.Since(p.Start), note
}

// Add adds d to the accumulated phase name.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.sums[name]
	if !ok {
		i = len(t.phases)
		t.sums[name] = i
		t.phases = append(t.phases, Phase{Name: name})
	}
	t.phases[i].Dur += d
	t.phases[i].Count++
}

// PhaseReport is the serializable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
	Count      int     `json:"count,omitempty"`
}

// Report is a snapshot of a Timer. TotalMS sums wall-clock phases only.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var wall time.Duration
	for _, p := range t.phases {
		if !p.accumulated() {
			wall += p.Dur
		}
		r.Phases = append(r.Phases, PhaseReport{
			Name:       p.Name,
			DurationMS: millis(p.Dur),
			Note:       p.Note,
			Count:      p.Count,
		})
	}
	r.TotalMS = millis(wall)
	return r
}

// Summary renders the report as an aligned table for stderr. Accumulated
// phases show their sample count and may exceed the total.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %9.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&sb, "  x%d", p.Count)
		}
		if p.Note != "" {
			fmt.Fprintf(&sb, "  // %s", p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
