// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"approval-workers/internal/common/config"
	"approval-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// StartWorker opens a job worker for taskType. It returns nil when the worker
// is disabled in configuration.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(taskType).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})
	return jobWorker
}

// StopWorkers closes every open worker and waits up to grace for in-flight
// jobs to finish.
func StopWorkers(workers []worker.JobWorker, grace time.Duration, log logger.Logger) {
	done := make(chan struct{})
	go func() {
		for _, w := range workers {
			w.Close()
			w.AwaitClose()
		}
		close(done)
	}()

	select {
	case <-done:
		log.Info("all workers stopped", map[string]interface{}{"count": len(workers)})
	case <-time.After(grace):
		log.Warn("workers did not stop in time", map[string]interface{}{"graceMs": grace.Milliseconds()})
	}
}
