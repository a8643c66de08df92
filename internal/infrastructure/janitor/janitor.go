package janitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultInterval = time.Minute

// Task is one periodic cleanup job. Run returns how many items it removed.
type Task struct {
	Name string
	Run  func(ctx context.Context) (int64, error)
}

// Janitor runs cleanup tasks on a fixed interval: expired refresh-token
// registry rows, stale in-memory rate-limit windows.
type Janitor struct {
	tasks    []Task
	interval time.Duration
	log      zerolog.Logger
}

// New creates a Janitor. If interval <= 0, defaultInterval is used.
func New(interval time.Duration, log zerolog.Logger, tasks ...Task) *Janitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Janitor{tasks: tasks, interval: interval, log: log}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	go j.run(ctx)
}

// RunOnce executes every task a single time. A failing task does not stop
// the others.
func (j *Janitor) RunOnce(ctx context.Context) {
	for _, t := range j.tasks {
		n, err := t.Run(ctx)
		if err != nil {
			j.log.Error().Err(err).Str("task", t.Name).Msg("janitor task failed")
			continue
		}
		if n > 0 {
			j.log.Debug().Str("task", t.Name).Int64("removed", n).Msg("janitor sweep")
		}
	}
}

func (j *Janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}
