package main

import (
	"fmt"
	"strings"
)

// uiMode is the --ui setting for the batch progress view.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModeNames = map[string]uiMode{
	"":     uiModeAuto,
	"auto": uiModeAuto,
	"on":   uiModeOn,
	"off":  uiModeOff,
}

func readUIMode(value string) (uiMode, error) {
	mode, ok := uiModeNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// enabled decides for auto by the terminals: the view draws on stderr while
// the report waits for stdout, so both must be interactive.
func (m uiMode) enabled(stdoutTTY, stderrTTY bool) bool {
	if m == uiModeAuto {
		return stdoutTTY && stderrTTY
	}
	return m == uiModeOn
}
