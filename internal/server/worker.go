package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/hyperknapsack/internal/experiment"
	"github.com/cwbudde/hyperknapsack/internal/knap"
	"github.com/cwbudde/hyperknapsack/internal/store"
	"github.com/google/uuid"
)

// runJob executes a solve job in the background.
// If runStore is not nil, each seeded run's result is persisted as a run record.
func runJob(ctx context.Context, jm *JobManager, runStore store.Store, jobID string) error {
	// Get the job
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	// Update state to running
	err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	})
	if err != nil {
		return err
	}

	slog.Info("Starting job", "job_id", jobID, "algorithm", job.Config.Algorithm, "instance", job.Config.InstancePath)

	// Load the instance
	inst, err := knap.Load(job.Config.InstancePath)
	if err != nil {
		markJobFailed(jm, jobID, fmt.Errorf("failed to load instance: %w", err))
		return err
	}

	slog.Info("Loaded instance", "job_id", jobID, "instance", inst.Name, "n", inst.N(), "capacity", inst.Capacity)

	// Resolve the algorithm
	algo, err := experiment.Resolve(job.Config.Algorithm, experiment.Options{
		Iterations: job.Config.Iterations,
		Alpha:      job.Config.Alpha,
		Operators:  job.Config.Operators,
	})
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	start := time.Now()
	runner := experiment.NewRunner()

	for run := 0; run < job.Config.Runs; run++ {
		// Check for cancellation between runs
		select {
		case <-ctx.Done():
			markJobCancelled(jm, jobID)
			return ctx.Err()
		default:
		}

		result, err := runner.RunSingle(algo, inst, job.Config.Seed+int64(run))
		if err != nil {
			markJobFailed(jm, jobID, err)
			return err
		}
		result.Run = run + 1

		// Persist the run result if a store is configured
		var runID string
		if runStore != nil {
			runID = uuid.New().String()
			if err := runStore.SaveRun(runID, store.NewRunRecord(runID, result)); err != nil {
				slog.Warn("Failed to persist run result", "job_id", jobID, "run_id", runID, "error", err)
				runID = ""
			}
		}

		// Update job with the run's outcome
		var state JobState
		jm.UpdateJob(jobID, func(j *Job) {
			j.RunsCompleted = run + 1
			if result.Value > j.BestValue || j.RunsCompleted == 1 {
				j.BestValue = result.Value
				j.BestWeight = result.Weight
				j.GapPercent = result.GapPercent
				j.OperatorStats = result.OperatorStats
			}
			if runID != "" {
				j.RunIDs = append(j.RunIDs, runID)
			}
			state = j.State
		})

		// Broadcast progress after every run
		job, _ = jm.GetJob(jobID)
		jm.broadcaster.Broadcast(ProgressEvent{
			JobID:         jobID,
			State:         state,
			RunsCompleted: run + 1,
			BestValue:     job.BestValue,
			BestWeight:    job.BestWeight,
			Timestamp:     time.Now(),
		})
	}

	elapsed := time.Since(start)

	// Check for cancellation after the runs
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	// Mark the job completed
	endTime := time.Now()
	err = jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.EndTime = &endTime
	})
	if err != nil {
		return err
	}

	job, _ = jm.GetJob(jobID)
	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"runs", job.RunsCompleted,
		"best_value", job.BestValue,
		"best_weight", job.BestWeight,
	)

	// Broadcast final completion event
	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:         jobID,
		State:         StateCompleted,
		RunsCompleted: job.RunsCompleted,
		BestValue:     job.BestValue,
		BestWeight:    job.BestWeight,
		Timestamp:     time.Now(),
	})

	return nil
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Job cancelled", "job_id", jobID)
}
