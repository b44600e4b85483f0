package runs

import (
	"sync"
	"time"
)

type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusRunning    Status = "Running"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
	StatusCanceled   Status = "Canceled"
)

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// Run tracks one submitted pipeline run. The platform owns the run; this is
// client-side bookkeeping only.
type Run struct {
	id       string
	pipeline string

	start time.Time
	end   time.Time

	statusMutex sync.RWMutex
	status      Status
	err         error
}

func NewRun(id string, pipeline string) *Run {
	return &Run{
		id:       id,
		pipeline: pipeline,
		start:    time.Now(),
		status:   StatusNotStarted,
	}
}

func (r *Run) Id() string {
	return r.id
}

func (r *Run) Pipeline() string {
	return r.pipeline
}

func (r *Run) Start() time.Time {
	return r.start
}

func (r *Run) End() time.Time {
	r.statusMutex.RLock()
	defer r.statusMutex.RUnlock()

	return r.end
}

func (r *Run) Status() Status {
	r.statusMutex.RLock()
	defer r.statusMutex.RUnlock()

	return r.status
}

func (r *Run) Err() error {
	r.statusMutex.RLock()
	defer r.statusMutex.RUnlock()

	return r.err
}

func (r *Run) SetStatus(status Status, err error) {
	r.statusMutex.Lock()
	defer r.statusMutex.Unlock()

	r.status = status
	r.err = err
	if status.IsTerminal() && r.end.IsZero() {
		r.end = time.Now()
	}
}
