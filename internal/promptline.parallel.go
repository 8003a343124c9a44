package internal

import "golang.org/x/sync/errgroup"

// mapOrdered applies fn to every item concurrently and returns the results
// in input order. Resolutions only read the shared Context, so they are
// safe to fan out; the index-addressed result slice keeps the final render
// order independent of completion order.
func mapOrdered[T, R any](items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	var g errgroup.Group
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i] = fn(item)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return results
}
