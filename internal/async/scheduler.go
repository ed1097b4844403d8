package async

import (
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Scheduler is a reference host-side scheduler for the generated code's
// `spawn`/`race` primitives: tasks enqueued via Spawn run concurrently
// and independently; Race polls several tasks and resolves with
// whichever completes first. Ordering between spawned tasks is
// deliberately not guaranteed beyond what errgroup's own goroutine
// scheduling provides.
type Scheduler struct {
	group *errgroup.Group
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{group: &errgroup.Group{}}
}

// Spawn enqueues task on the scheduler, polling it to completion under a
// correlation id used only for diagnostics — this thunk-forcing model
// needs no result channel back to the spawner beyond that await.
func (s *Scheduler) Spawn(task *Task[any]) uuid.UUID {
	id := uuid.New()
	s.group.Go(func() error {
		for {
			done, err := task.Poll(id)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	})
	return id
}

// Wait blocks until every spawned task has completed, returning the
// first error any of them produced.
func (s *Scheduler) Wait() error {
	return s.group.Wait()
}

// Race polls every task in tasks in turn until one resolves, returning
// its index and value. This is a reference (not work-stealing) poll
// loop: a production scheduler would wake on a future's own readiness
// rather than busy-poll, but the protocol observed by generated code —
// first completion wins, losers are left running — is the same.
func Race(tasks []*Task[any]) (winner int, value any, err error) {
	for {
		for i, t := range tasks {
			done, pollErr := t.Poll(i)
			if pollErr != nil {
				return -1, nil, pollErr
			}
			if done {
				v, _ := t.Result()
				return i, v, nil
			}
		}
	}
}
