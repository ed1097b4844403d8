package async

// EntryFn is a source-convention closure's compiled entry function: it
// runs until either resolving S directly or suspending on a host
// future. T at each individual suspension point varies per FFI call
// site in the generated code (the real ABI passes raw, type-erased
// pointers there); Task models that erasure with T = any rather than
// threading a distinct type parameter through every suspension.
type EntryFn[S any] func(stack *AsyncStack[S], resolve ContinuationFn[any, S]) error

// Task adapts a source-convention closure into a host-polled task.
type Task[S any] struct {
	stack   *AsyncStack[S]
	entry   EntryFn[S]
	started bool
}

// Call returns a Task ready for its first Poll.
func Call[S any](entry EntryFn[S]) *Task[S] {
	return &Task[S]{stack: New[S](), entry: entry}
}

// Poll drives the task once under ctx as the current polling context.
// On the first call it invokes entry with a resolve continuation that
// stashes the result in the stack. On every later call it resumes
// whatever step/continuation pair the prior suspension queued — a
// trampoline's step pops its stashed value straight back to the
// continuation, while a future's step polls the stored future and only
// calls its continuation once that future is ready. Poll returns true
// once the stack holds a resolved value.
func (t *Task[S]) Poll(ctx any) (done bool, err error) {
	err = WithPollContext(t.stack, ctx, func() error {
		if !t.started {
			t.started = true
			resolve := ContinuationFn[any, S](func(stack *AsyncStack[S], value any) error {
				stack.Resolve(value.(S))
				return nil
			})
			return t.entry(t.stack, resolve)
		}
		tramp, err := Resume[any, S](t.stack)
		if err != nil {
			return err
		}
		return tramp.Step(t.stack, tramp.Continuation)
	})
	if err != nil {
		return false, err
	}
	return t.stack.Done(), nil
}

// Result returns the task's resolved value and whether it has one yet.
func (t *Task[S]) Result() (S, bool) {
	if t.stack.Resolved == nil {
		var zero S
		return zero, false
	}
	return *t.stack.Resolved, true
}
