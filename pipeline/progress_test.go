package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Record(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 4, 1)

	tracker.Start()
	tracker.Record(true)
	tracker.Record(false)
	tracker.Record(true)
	tracker.Record(true)

	done, failed := tracker.Counts()
	assert.Equal(t, 4, done)
	assert.Equal(t, 1, failed)
	assert.Contains(t, buf.String(), "4/4 (100.0%), 1 failed")
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 5)

	tracker.Start()
	for range 4 {
		tracker.Record(true)
	}
	assert.Empty(t, buf.String(), "should not print under interval")

	tracker.Record(true)
	assert.Contains(t, buf.String(), "5/10 (50.0%)")
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 2, 1)

	tracker.Start()
	for range 5 {
		tracker.Record(true)
	}

	done, _ := tracker.Counts()
	assert.Equal(t, 2, done)
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 10)

	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0")
	assert.Contains(t, buf.String(), "\n")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Record(true)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Zero(t, tracker.Elapsed())
}
