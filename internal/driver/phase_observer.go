package driver

import "time"

// Status reports where a file is in the batch.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being analysed.
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	// StatusError indicates the file could not be read.
	StatusError Status = "error"
)

// ProgressEvent describes a file changing status. File is empty for
// batch-wide phase events, in which case Phase names the phase.
type ProgressEvent struct {
	File     string
	Phase    string
	Status   Status
	Findings int
	Err      error
	Elapsed  time.Duration
}

// ProgressObserver receives events from worker goroutines concurrently.
type ProgressObserver func(ProgressEvent)

func (o ProgressObserver) emit(ev ProgressEvent) {
	if o != nil {
		o(ev)
	}
}
