package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerLifecycle(t *testing.T) {
	tracker := NewTracker(3)
	assert.Equal(t, FoldPending, tracker.Fold(0).Status)
	assert.Equal(t, 0, tracker.Completed())

	tracker.StartFold(0)
	assert.Equal(t, FoldRunning, tracker.Fold(0).Status)

	tracker.CompleteFold(0)
	assert.Equal(t, FoldCompleted, tracker.Fold(0).Status)
	assert.Equal(t, 1, tracker.Completed())

	tracker.StartFold(1)
	tracker.FailFold(1, errors.New("training failed"))
	record := tracker.Fold(1)
	assert.Equal(t, FoldFailed, record.Status)
	assert.EqualError(t, record.Error, "training failed")
	assert.Equal(t, 1, tracker.Completed())
}

func TestFoldDurationOnReturnedRecord(t *testing.T) {
	tracker := NewTracker(1)
	tracker.StartFold(0)
	time.Sleep(time.Millisecond)
	tracker.CompleteFold(0)

	// Duration must be callable directly on the copy Fold returns
	assert.Greater(t, tracker.Fold(0).Duration(), time.Duration(0))
}

func TestFoldRecordDuration(t *testing.T) {
	record := FoldRecord{}
	assert.Equal(t, time.Duration(0), record.Duration())

	start := time.Now().Add(-time.Second)
	end := start.Add(250 * time.Millisecond)
	record = FoldRecord{StartTime: start, EndTime: &end}
	assert.Equal(t, 250*time.Millisecond, record.Duration())

	running := FoldRecord{StartTime: start}
	assert.Greater(t, running.Duration(), time.Duration(0))
}

func TestTrackerReport(t *testing.T) {
	tracker := NewTracker(3)
	tracker.StartFold(0)
	tracker.CompleteFold(0)
	tracker.StartFold(1)
	tracker.FailFold(1, errors.New("boom"))

	var buf bytes.Buffer
	tracker.Report(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "fold 1")
	assert.Contains(t, lines[0], "completed")
	assert.Contains(t, lines[1], "failed")
	assert.Contains(t, lines[1], "boom")
	assert.Contains(t, lines[2], "pending")
}

func TestTimer(t *testing.T) {
	timer := NewTimer("training")
	time.Sleep(5 * time.Millisecond)
	elapsed := timer.Stop()
	assert.Greater(t, elapsed, time.Duration(0))

	// stopping again keeps the first reading
	again := timer.Stop()
	assert.Equal(t, elapsed, again)

	var buf bytes.Buffer
	timer.Results(&buf)
	assert.Contains(t, buf.String(), "training")
}
