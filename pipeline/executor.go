package pipeline

import (
	"context"

	"gopkg.in/tomb.v2"
)

// RunMany runs pipe against every item concurrently, preserving per-item
// ordering of the contexts it returns (result[i] corresponds to items[i]).
// The connector may parallelize *_Many persistence, but decoding and
// per-field pipelines for distinct objects are independent and safe to fan
// out; this helper is the fan-out point, grounded in axe's tomb-managed
// worker pool (axe/task.go, axe/pool.go).
func RunMany(parent context.Context, pipe Pipeline, items []*Context) []*Context {
	results := make([]*Context, len(items))

	t, _ := tomb.WithContext(parent)
	for i, item := range items {
		i, item := i, item
		t.Go(func() error {
			results[i] = pipe.Process(item)
			return nil
		})
	}

	_ = t.Wait()

	return results
}
