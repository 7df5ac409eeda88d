package billomat

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// DefaultBatchConcurrency bounds batch helpers when no limit is given.
const DefaultBatchConcurrency = 5

// Creator is satisfied by every resource and sub-resource service.
type Creator[E any] interface {
	Create(ctx context.Context, entity *E) error
}

// Deleter is satisfied by every top level resource service.
type Deleter interface {
	Delete(ctx context.Context, id int) error
}

// CreateAll creates entities with at most concurrency requests in flight.
// Every entity is attempted; failures are collected into a
// *multierror.Error naming the entity index.
func CreateAll[E any](ctx context.Context, service Creator[E], entities []*E, concurrency int) error {
	return runBatch(ctx, len(entities), concurrency, func(ctx context.Context, index int) error {
		err := service.Create(ctx, entities[index])
		if err != nil {
			return fmt.Errorf("creating entity %d: %w", index, err)
		}

		return nil
	})
}

// DeleteAll deletes ids with at most concurrency requests in flight.
func DeleteAll(ctx context.Context, service Deleter, ids []int, concurrency int) error {
	return runBatch(ctx, len(ids), concurrency, func(ctx context.Context, index int) error {
		err := service.Delete(ctx, ids[index])
		if err != nil {
			return fmt.Errorf("deleting %d: %w", ids[index], err)
		}

		return nil
	})
}

func runBatch(ctx context.Context, count, concurrency int, operation func(ctx context.Context, index int) error) error {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	var (
		waitGroup sync.WaitGroup
		mu        sync.Mutex
		result    *multierror.Error
	)

	semaphore := make(chan struct{}, concurrency)

	for index := range count {
		waitGroup.Add(1)

		go func(index int) {
			defer waitGroup.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				mu.Lock()
				result = multierror.Append(result, fmt.Errorf("entity %d: %w", index, ctx.Err()))
				mu.Unlock()

				return
			}

			defer func() { <-semaphore }()

			err := operation(ctx, index)
			if err != nil {
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}
		}(index)
	}

	waitGroup.Wait()

	return result.ErrorOrNil()
}
