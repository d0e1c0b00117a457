package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls which scopes a tracer emits.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только ScopeError
	LevelPhase        // команда и фазы
	LevelDetail       // + по файлам
	LevelDebug        // + проходы внутри файла
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	i := slices.Index(levelNames[:], strings.ToLower(s))
	if i < 0 {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
	}
	return Level(i), nil // #nosec G115 -- индекс в levelNames
}

// deepest is the finest non-error scope emitted at each level.
var deepest = [...]Scope{LevelPhase: ScopePhase, LevelDetail: ScopeFile, LevelDebug: ScopePass}

// ShouldEmit reports whether events of scope pass the level filter. Error
// events pass at every level except off.
func (l Level) ShouldEmit(scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case scope == ScopeError:
		return true
	case int(l) < len(deepest):
		return scope <= deepest[l]
	}
	return false
}
