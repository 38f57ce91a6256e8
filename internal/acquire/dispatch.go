package acquire

import (
	"context"
	"math/rand"
	"sync"

	"github.com/rkm/planet-fetch/internal/config"
)

// DefaultWorkers is the download worker pool size.
const DefaultWorkers = 3

// Result records the outcome of one id's acquisition.
type Result struct {
	ID    string
	State State
	Err   error
}

// DownloadAll fans the ids out across a fixed-size worker pool. Each worker
// processes one id at a time to completion before taking the next; a failure
// on one id never aborts its siblings. When randomize is set the dispatch
// order is shuffled (unseeded; order varies run to run).
func (a *Acquirer) DownloadAll(ctx context.Context, ids []string, cfg *config.Config, workers int, randomize bool) []Result {
	if workers < 1 {
		workers = DefaultWorkers
	}

	queue := make([]string, len(ids))
	copy(queue, ids)
	if randomize {
		rand.Shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})
	}

	jobs := make(chan string)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				state, err := a.Acquire(ctx, id, cfg)
				if err != nil {
					a.logger.Error("acquisition failed", "id", id, "state", state, "error", err)
				}
				results <- Result{ID: id, State: state, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range queue {
			select {
			case jobs <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Result, 0, len(queue))
	for r := range results {
		out = append(out, r)
	}
	return out
}

// Failed counts results that did not end in StateDone.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil || r.State != StateDone {
			n++
		}
	}
	return n
}
