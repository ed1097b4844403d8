package async

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsyncStack_StartsInSuspendState(t *testing.T) {
	a := New[int]()
	_, err := Resume[any, int](a)
	var unexpected *UnexpectedAsyncStackActionError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, ActionResume, unexpected.Expected)
	require.Equal(t, ActionSuspend, unexpected.Actual)
}

func TestSuspend_QueuesResumeRestoreSuspend(t *testing.T) {
	a := New[int]()
	step := StepFn[any, int](func(stack *AsyncStack[int], cont ContinuationFn[any, int]) error { return nil })
	cont := ContinuationFn[any, int](func(stack *AsyncStack[int], v any) error { return nil })
	require.NoError(t, Suspend(a, "future", step, cont))

	tramp, err := Resume[any, int](a)
	require.NoError(t, err)
	require.NotNil(t, tramp.Step)
	require.NotNil(t, tramp.Continuation)

	future, err := a.Restore()
	require.NoError(t, err)
	require.Equal(t, "future", future)

	// trace is back to [Suspend] after Restore
	_, err = a.Restore()
	require.Error(t, err)
}

func TestPushTrampoline_PopsValueBackToContinuation(t *testing.T) {
	a := New[int]()
	var received any
	cont := ContinuationFn[any, int](func(stack *AsyncStack[int], v any) error {
		received = v
		return nil
	})
	require.NoError(t, PushTrampoline[any](a, cont, 42))

	tramp, err := Resume[any, int](a)
	require.NoError(t, err)
	require.NoError(t, tramp.Step(a, tramp.Continuation))
	require.Equal(t, 42, received)
}

func TestWithPollContext_RestoresPreviousOnExit(t *testing.T) {
	a := New[int]()
	a.PollContext = "outer"
	err := WithPollContext(a, "inner", func() error {
		require.Equal(t, "inner", a.Context())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "outer", a.Context())
}

func TestTask_ResolvesOnFirstPollWithNoSuspension(t *testing.T) {
	task := Call(EntryFn[string](func(stack *AsyncStack[string], resolve ContinuationFn[any, string]) error {
		return resolve(stack, "done")
	}))
	done, err := task.Poll(nil)
	require.NoError(t, err)
	require.True(t, done)
	v, ok := task.Result()
	require.True(t, ok)
	require.Equal(t, "done", v)
}

func TestTask_SuspendsThenResolvesAfterRestore(t *testing.T) {
	task := Call(EntryFn[string](func(stack *AsyncStack[string], resolve ContinuationFn[any, string]) error {
		step := StepFn[any, string](func(s *AsyncStack[string], cont ContinuationFn[any, string]) error {
			future, err := s.Restore()
			require.NoError(t, err)
			return cont(s, future)
		})
		finish := ContinuationFn[any, string](func(s *AsyncStack[string], v any) error {
			return resolve(s, v.(string))
		})
		return Suspend(stack, "a-future", step, finish)
	}))

	done, err := task.Poll(nil)
	require.NoError(t, err)
	require.False(t, done)

	done, err = task.Poll(nil)
	require.NoError(t, err)
	require.True(t, done)
	v, _ := task.Result()
	require.Equal(t, "a-future", v)
}
