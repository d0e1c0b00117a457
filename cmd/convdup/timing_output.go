package main

import (
	"fmt"
	"io"

	"convdup/internal/observ"
)

// printTimings writes the timer summary; nothing when timings are off.
func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
