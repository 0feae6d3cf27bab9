package server

import (
	"testing"
	"time"
)

func TestJobManager_CreateJob(t *testing.T) {
	jm := NewJobManager()

	config := JobConfig{
		Algorithm:    "greedy_ratio",
		InstancePath: "test.txt",
		Runs:         1,
		Seed:         42,
	}

	job := jm.CreateJob(config)

	if job.ID == "" {
		t.Error("Job ID should not be empty")
	}

	if job.State != StatePending {
		t.Errorf("Initial state should be pending, got %s", job.State)
	}

	if job.Config.InstancePath != "test.txt" {
		t.Errorf("Config not set correctly")
	}
}

func TestJobManager_GetJob(t *testing.T) {
	jm := NewJobManager()

	config := JobConfig{Algorithm: "greedy_ratio", InstancePath: "test.txt"}
	job := jm.CreateJob(config)

	retrieved, exists := jm.GetJob(job.ID)
	if !exists {
		t.Error("Job should exist")
	}

	if retrieved.ID != job.ID {
		t.Error("Retrieved wrong job")
	}

	_, exists = jm.GetJob("nonexistent")
	if exists {
		t.Error("Should not find nonexistent job")
	}
}

func TestJobManager_ListJobs(t *testing.T) {
	jm := NewJobManager()

	if len(jm.ListJobs()) != 0 {
		t.Error("Should start with no jobs")
	}

	jm.CreateJob(JobConfig{InstancePath: "test1.txt"})
	jm.CreateJob(JobConfig{InstancePath: "test2.txt"})

	jobs := jm.ListJobs()
	if len(jobs) != 2 {
		t.Errorf("Expected 2 jobs, got %d", len(jobs))
	}
}

func TestJobManager_UpdateJob(t *testing.T) {
	jm := NewJobManager()

	job := jm.CreateJob(JobConfig{InstancePath: "test.txt"})

	err := jm.UpdateJob(job.ID, func(j *Job) {
		j.State = StateRunning
		j.RunsCompleted = 3
		j.BestValue = 30
	})

	if err != nil {
		t.Errorf("Update should succeed: %v", err)
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateRunning {
		t.Error("State should be updated")
	}
	if updated.RunsCompleted != 3 {
		t.Error("RunsCompleted should be updated")
	}
	if updated.BestValue != 30 {
		t.Error("BestValue should be updated")
	}

	err = jm.UpdateJob("nonexistent", func(j *Job) {})
	if err == nil {
		t.Error("Update of nonexistent job should fail")
	}
}

func TestJobManager_GetRunningJobs(t *testing.T) {
	jm := NewJobManager()

	running := jm.CreateJob(JobConfig{InstancePath: "a.txt"})
	jm.CreateJob(JobConfig{InstancePath: "b.txt"})

	jm.UpdateJob(running.ID, func(j *Job) {
		j.State = StateRunning
	})

	jobs := jm.GetRunningJobs()
	if len(jobs) != 1 {
		t.Fatalf("Expected 1 running job, got %d", len(jobs))
	}
	if jobs[0].ID != running.ID {
		t.Error("Wrong job reported as running")
	}
}

func TestJobManager_ThreadSafety(t *testing.T) {
	jm := NewJobManager()

	job := jm.CreateJob(JobConfig{InstancePath: "test.txt"})

	// Simulate concurrent updates
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(run int) {
			jm.UpdateJob(job.ID, func(j *Job) {
				j.RunsCompleted = run
				time.Sleep(1 * time.Millisecond)
			})
			done <- true
		}(i)
	}

	// Wait for all updates
	for i := 0; i < 10; i++ {
		<-done
	}

	// Should not crash - actual value depends on race
	_, exists := jm.GetJob(job.ID)
	if !exists {
		t.Error("Job should still exist after concurrent updates")
	}
}
