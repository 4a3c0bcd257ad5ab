package models

import (
	"testing"
	"time"
)

func TestDeadlinePassed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	job := Job{}
	if job.DeadlinePassed(now) {
		t.Fatal("job without deadline never expires")
	}

	future := now.Add(24 * time.Hour)
	job.Deadline = &future
	if job.DeadlinePassed(now) {
		t.Fatal("future deadline should not be passed")
	}

	past := now.Add(-time.Minute)
	job.Deadline = &past
	if !job.DeadlinePassed(now) {
		t.Fatal("past deadline should be passed")
	}
}
