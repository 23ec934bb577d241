// Package fanout runs one function over a slice with a bounded number of
// goroutines, keeping results in input order. The review service uses it to
// read each mentored team's project concurrently without letting a large
// mentor portfolio spawn unbounded goroutines.
package fanout

import (
	"context"
	"sync"
)

// Result pairs the outcome for one input item: Value on success, Err on
// failure (including ctx.Err() when cancellation won the semaphore race).
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn once per item with at most width goroutines in flight and
// returns the results in item order. It blocks until every started goroutine
// finishes.
//
// Cancellation is checked only while waiting for a slot: a goroutine that
// loses the race to ctx records ctx.Err() without calling fn, while one that
// already holds a slot runs fn to completion (fn sees ctx and may observe
// cancellation itself). An empty input yields an empty non-nil slice.
//
// width must be at least 1; anything smaller is treated as 1.
func Run[T, R any](ctx context.Context, width int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}
	if width < 1 {
		width = 1
	}

	results := make([]Result[R], len(items))
	slots := make(chan struct{}, width)

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
			case <-ctx.Done():
				results[i] = Result[R]{Err: ctx.Err()}
				return
			}

			val, err := fn(ctx, items[i])
			results[i] = Result[R]{Value: val, Err: err}
		}()
	}
	wg.Wait()

	return results
}
