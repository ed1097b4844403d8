// Package async implements the CPS async stack: the runtime structure a
// task's suspension points are threaded through when a source-convention
// closure calls into a host future. Modeled in the same structured-error
// style as the rest of this module's runtime glue, not as compiler IR —
// unlike internal/fmm/internal/rc this package is executable: it is the
// host-side reference implementation of the protocol the generated
// code's foreign calls (suspend/resume/restore/trampoline) target.
//
// AsyncStack itself only moves opaque payloads (Go cannot add type
// parameters to a method beyond the receiver's own, and a step pushed
// by one suspension may carry a different T than the next), so the
// Suspend/Resume/PushTrampoline operations are free generic functions
// parameterized over both T and S, type-asserting against the stack's
// type-erased scratch entries.
package async

import "fmt"

// Action is one step of the action trace's expected-next-call protocol.
type Action int

const (
	ActionSuspend Action = iota
	ActionResume
	ActionRestore
	ActionTrampoline
	actionNone // only ever Expected/Actual's zero-trace sentinel
)

func (a Action) String() string {
	switch a {
	case ActionSuspend:
		return "Suspend"
	case ActionResume:
		return "Resume"
	case ActionRestore:
		return "Restore"
	case ActionTrampoline:
		return "Trampoline"
	default:
		return "None"
	}
}

// UnexpectedAsyncStackActionError reports a protocol violation: the
// caller attempted an action the trace did not have queued next.
type UnexpectedAsyncStackActionError struct {
	Expected Action
	Actual   Action
}

func (e *UnexpectedAsyncStackActionError) Error() string {
	return fmt.Sprintf("async stack: expected %s, got %s", e.Expected, e.Actual)
}

// StepFn advances a suspended computation by invoking continuation once
// the awaited value (of type T) is ready.
type StepFn[T, S any] func(stack *AsyncStack[S], continuation ContinuationFn[T, S]) error

// ContinuationFn resumes a computation with the value its suspension was
// waiting on.
type ContinuationFn[T, S any] func(stack *AsyncStack[S], value T) error

// Trampoline bundles a queued step with the continuation it will invoke,
// 's device for emulating a tail call without growing the host
// Go call stack.
type Trampoline[T, S any] struct {
	Step         StepFn[T, S]
	Continuation ContinuationFn[T, S]
}

// scratchEntry is one push onto the linear scratch stack. Fields hold
// type-erased `any` values; the generic wrapper functions below recover
// their concrete type via assertion immediately after popping.
type scratchEntry struct {
	future       any
	step         any
	continuation any
	value        any
}

// AsyncStack is the per-task suspension state describes: S is
// the task's eventual result type. PollContext is the host's raw
// polling handle, attached only while a step is executing (see
// WithPollContext).
type AsyncStack[S any] struct {
	scratch     []scratchEntry
	trace       []Action
	PollContext any
	Resolved    *S
}

// New returns a stack starting in the Suspend state.
func New[S any]() *AsyncStack[S] {
	return &AsyncStack[S]{trace: []Action{ActionSuspend}}
}

func (a *AsyncStack[S]) expect(action Action) error {
	got := actionNone
	if len(a.trace) > 0 {
		got = a.trace[0]
	}
	if got != action {
		return &UnexpectedAsyncStackActionError{Expected: action, Actual: got}
	}
	a.trace = a.trace[1:]
	return nil
}

// Suspend implements the Suspend -> suspend(...) transition: it pushes
// future/step/continuation and queues [Resume, Restore, Suspend] as the
// next legal calls.
func Suspend[T, S any](a *AsyncStack[S], future any, step StepFn[T, S], continuation ContinuationFn[T, S]) error {
	if err := a.expect(ActionSuspend); err != nil {
		return err
	}
	a.scratch = append(a.scratch, scratchEntry{future: future, step: step, continuation: continuation})
	a.trace = []Action{ActionResume, ActionRestore, ActionSuspend}
	return nil
}

// Resume implements the Resume -> resume() transition: it pops step and
// continuation off the top scratch entry and hands them back as a
// Trampoline, leaving future in place for Restore.
func Resume[T, S any](a *AsyncStack[S]) (Trampoline[T, S], error) {
	if err := a.expect(ActionResume); err != nil {
		return Trampoline[T, S]{}, err
	}
	top := a.scratch[len(a.scratch)-1]
	step, _ := top.step.(StepFn[T, S])
	continuation, _ := top.continuation.(ContinuationFn[T, S])
	return Trampoline[T, S]{Step: step, Continuation: continuation}, nil
}

// Restore implements the Restore -> restore() transition: it pops the
// future the matching Suspend pushed, handing it to the caller to poll.
func (a *AsyncStack[S]) Restore() (future any, err error) {
	if err := a.expect(ActionRestore); err != nil {
		return nil, err
	}
	n := len(a.scratch) - 1
	future = a.scratch[n].future
	a.scratch = a.scratch[:n]
	return future, nil
}

// PushTrampoline implements the Suspend -> trampoline(...) transition:
// it queues value and continuation plus a synthesized step that pops
// value back off and invokes continuation with it, then narrows the
// trace to [Resume, Suspend] ("emulate tail-call... prevents
// unbounded stack growth in the absence of guaranteed tail-calls").
func PushTrampoline[T, S any](a *AsyncStack[S], continuation ContinuationFn[T, S], value T) error {
	if err := a.expect(ActionSuspend); err != nil {
		return err
	}
	step := StepFn[T, S](func(stack *AsyncStack[S], cont ContinuationFn[T, S]) error {
		v, _ := stack.popTrampolineValue().(T)
		return cont(stack, v)
	})
	a.scratch = append(a.scratch, scratchEntry{value: value, step: step, continuation: continuation})
	a.trace = []Action{ActionResume, ActionSuspend}
	return nil
}

// popTrampolineValue retrieves the value a PushTrampoline queued,
// consumed by the synthesized step once Resume has handed it back.
func (a *AsyncStack[S]) popTrampolineValue() any {
	n := len(a.scratch) - 1
	v := a.scratch[n].value
	a.scratch = a.scratch[:n]
	return v
}

// Resolve records the task's final value, terminating polling.
func (a *AsyncStack[S]) Resolve(value S) {
	a.Resolved = &value
}

// Done reports whether the stack holds a resolved value.
func (a *AsyncStack[S]) Done() bool {
	return a.Resolved != nil
}
