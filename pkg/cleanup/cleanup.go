// Package cleanup collects shutdown jobs registered by constructors (pools,
// clients, log files) and runs them once the process is done.
package cleanup

import (
	"errors"
	"log/slog"
	"sync"
)

type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	jobs = append(jobs, j)
	mu.Unlock()
}

// CleanUp runs the registered jobs in reverse order of registration, so
// resources opened first are released last. Every job runs even if some fail.
func CleanUp() error {
	mu.Lock()
	pending := jobs
	jobs = nil
	mu.Unlock()

	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		j := pending[i]
		if err := j.F(); err != nil {
			slog.Default().Error("cleanup job failed", slog.String("job", j.Name), slog.String("error", err.Error()))
			errs = append(errs, errors.New(j.Name+": "+err.Error()))
			continue
		}
		slog.Default().Debug("cleanup job done", slog.String("job", j.Name))
	}
	return errors.Join(errs...)
}
