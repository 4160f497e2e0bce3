package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

type FoldStatus string

const (
	FoldPending   FoldStatus = "pending"
	FoldRunning   FoldStatus = "running"
	FoldCompleted FoldStatus = "completed"
	FoldFailed    FoldStatus = "failed"
)

type FoldRecord struct {
	Index     int
	Status    FoldStatus
	StartTime time.Time
	EndTime   *time.Time
	Error     error
}

func (r FoldRecord) Duration() time.Duration {
	if r.StartTime.IsZero() {
		return 0
	}
	if r.EndTime == nil {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// Tracker records the lifecycle of every fold in a run.
type Tracker struct {
	folds []*FoldRecord
	mu    sync.RWMutex
}

func NewTracker(nFolds int) *Tracker {
	folds := make([]*FoldRecord, nFolds)
	for i := range folds {
		folds[i] = &FoldRecord{Index: i, Status: FoldPending}
	}
	return &Tracker{folds: folds}
}

func (t *Tracker) StartFold(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.folds[index].Status = FoldRunning
	t.folds[index].StartTime = time.Now()
}

func (t *Tracker) CompleteFold(index int) {
	t.finish(index, FoldCompleted, nil)
}

func (t *Tracker) FailFold(index int, err error) {
	t.finish(index, FoldFailed, err)
}

func (t *Tracker) finish(index int, status FoldStatus, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.folds[index].Status = status
	t.folds[index].EndTime = &now
	t.folds[index].Error = err
}

func (t *Tracker) Fold(index int) FoldRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return *t.folds[index]
}

func (t *Tracker) Completed() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, fold := range t.folds {
		if fold.Status == FoldCompleted {
			n++
		}
	}
	return n
}

func (t *Tracker) Report(w io.Writer) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, fold := range t.folds {
		switch fold.Status {
		case FoldCompleted:
			fmt.Fprintf(w, "fold %d: %s in %v\n", fold.Index+1, green(string(fold.Status)), fold.Duration().Round(time.Millisecond))
		case FoldFailed:
			fmt.Fprintf(w, "fold %d: %s: %v\n", fold.Index+1, red(string(fold.Status)), fold.Error)
		default:
			fmt.Fprintf(w, "fold %d: %s\n", fold.Index+1, fold.Status)
		}
	}
}
