package mwapi

import (
	"context"
	"sync"
	"time"

	"github.com/mwbot-io/mwapi/internal/constants"
)

// BatchOperation is one composite action queued for batch execution.
type BatchOperation struct {
	// ID correlates the result with the operation; it is opaque to the
	// executor.
	ID string

	// Action is the composite action to run. Each operation owns its own
	// sequence state and token, so operations never share mutable state.
	Action Action
}

// BatchResult is the outcome of one batch operation.
type BatchResult struct {
	ID       string
	Err      error
	Duration time.Duration
}

// BatchExecutor runs independent composite actions concurrently. Each
// action still executes its own request sequence strictly in order; only
// whole actions run in parallel.
type BatchExecutor struct {
	performer   ActionPerformer
	concurrency int
}

// NewBatchExecutor creates an executor running at most concurrency actions
// at once. Zero or negative concurrency selects the default limit.
func NewBatchExecutor(performer ActionPerformer, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		performer:   performer,
		concurrency: concurrency,
	}
}

// Execute runs all operations and returns their results in input order.
// A failed operation does not stop the others; inspect each result's Err.
func (e *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))
	semaphore := make(chan struct{}, e.concurrency)

	var wg sync.WaitGroup

	for i, op := range operations {
		wg.Add(1)

		go func(i int, op BatchOperation) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			start := time.Now()
			err := e.performer.PerformAction(ctx, op.Action)

			results[i] = BatchResult{
				ID:       op.ID,
				Err:      err,
				Duration: time.Since(start),
			}
		}(i, op)
	}

	wg.Wait()

	return results
}
