package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryJob(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		pool := Start(workers)

		var count atomic.Int64
		for range 100 {
			pool.Do(func() { count.Add(1) })
		}
		pool.Wait()
		pool.Wait()

		if got := count.Load(); got != 100 {
			t.Errorf("%d workers ran %d jobs, want 100", workers, got)
		}
	}
}

func TestPoolSingleWorkerInline(t *testing.T) {
	pool := Start(1)
	if pool.Size() != 1 {
		t.Fatalf("size %d, want 1", pool.Size())
	}

	ran := false
	pool.Do(func() { ran = true })
	if !ran {
		t.Error("job did not run before Do returned")
	}
	pool.Wait()
}
