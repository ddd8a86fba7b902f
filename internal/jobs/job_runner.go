package jobs

import (
	"context"
	"time"

	"partsphere-backend/internal/config"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository"
)

// JobRunner coordinates all scheduled maintenance jobs.
type JobRunner struct {
	store  repository.Store
	config *config.Config
}

func NewJobRunner(store repository.Store, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		config: cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

func (jr *JobRunner) jobContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Minute)
}
