// cmd/worker-manager/outcome.go
package main

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"approval-workers/internal/common/observability"
)

// outcomeClient remembers which command a handler reported the job with.
type outcomeClient struct {
	worker.JobClient
	status string
}

func (c *outcomeClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.status = observability.StatusCompleted
	return c.JobClient.NewCompleteJobCommand()
}

func (c *outcomeClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.status = observability.StatusFailed
	return c.JobClient.NewFailJobCommand()
}

func (c *outcomeClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.status = observability.StatusThrown
	return c.JobClient.NewThrowErrorCommand()
}

// instrument records each job's outcome and duration through OpenTelemetry.
func instrument(obs *observability.Observability, taskType string, handle worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		started := time.Now()
		tracked := &outcomeClient{JobClient: client, status: observability.StatusUnreported}

		handle(tracked, job)
		obs.RecordJob(context.Background(), taskType, tracked.status, time.Since(started))
	}
}
