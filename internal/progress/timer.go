package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Timer measures the wall-clock duration of one named run.
type Timer struct {
	name    string
	start   time.Time
	elapsed time.Duration
	stopped bool
}

func NewTimer(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

func (t *Timer) Stop() time.Duration {
	if !t.stopped {
		t.elapsed = time.Since(t.start)
		t.stopped = true
	}
	return t.elapsed
}

func (t *Timer) Results(w io.Writer) {
	elapsed := t.elapsed
	if !t.stopped {
		elapsed = time.Since(t.start)
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, "%s finished in %s\n", t.name, green(elapsed.Round(time.Millisecond)))
}
