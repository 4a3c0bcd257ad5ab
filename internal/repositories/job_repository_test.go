package repositories

import (
	"errors"
	"testing"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
)

func TestApplyOncePerJob(t *testing.T) {
	store := NewMemoryStore()
	firm := seedUser(t, store, "studio")
	alice := seedUser(t, store, "alice")

	job := models.Job{UserID: firm.ID, Title: "Junior Architect", Company: "Studio"}
	if err := store.CreateJob(&job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	app := models.JobApplication{JobID: job.ID, UserID: alice.ID, CoverLetter: "hi"}
	if err := store.Apply(&app); err != nil {
		t.Fatalf("apply: %v", err)
	}

	dup := models.JobApplication{JobID: job.ID, UserID: alice.ID}
	if err := store.Apply(&dup); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on duplicate application, got %v", err)
	}

	got, err := store.GetApplication(job.ID, alice.ID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if got.CoverLetter != "hi" {
		t.Fatalf("unexpected application: %+v", got)
	}
}

func TestListJobsActiveFilter(t *testing.T) {
	store := NewMemoryStore()
	firm := seedUser(t, store, "studio")

	open := models.Job{UserID: firm.ID, Title: "Open role", Company: "Studio"}
	if err := store.CreateJob(&open); err != nil {
		t.Fatalf("create job: %v", err)
	}
	closed := models.Job{UserID: firm.ID, Title: "Closed role", Company: "Studio"}
	if err := store.CreateJob(&closed); err != nil {
		t.Fatalf("create job: %v", err)
	}
	if err := store.CloseJob(closed.ID, firm.ID); err != nil {
		t.Fatalf("close job: %v", err)
	}

	jobs, total, err := store.ListJobs(true, 1, 20)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if total != 1 || len(jobs) != 1 || jobs[0].Title != "Open role" {
		t.Fatalf("expected only the open role, got total %d jobs %+v", total, jobs)
	}

	_, total, err = store.ListJobs(false, 1, 20)
	if err != nil {
		t.Fatalf("list all jobs: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 jobs including inactive, got %d", total)
	}
}
