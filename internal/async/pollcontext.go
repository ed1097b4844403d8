package async

// WithPollContext attaches ctx as the stack's current polling context
// for the duration of fn, restoring whatever was attached before via a
// scoped set/clear around the closure. A previous context is legitimate
// when one poll recursively drives another (race/spawn compose this
// way), so restoring rather than clearing unconditionally keeps an
// outer poll's own context intact once the inner one returns.
func WithPollContext[S any](a *AsyncStack[S], ctx any, fn func() error) error {
	previous := a.PollContext
	a.PollContext = ctx
	defer func() { a.PollContext = previous }()
	return fn()
}

// Context returns the host's current polling context, for a suspended
// step to use when registering a wakeup.
func (a *AsyncStack[S]) Context() any {
	return a.PollContext
}
