package hook

// Chain composes hooks into a single hook, the first one wrapping
// outermost. Returns nil when no non-nil hook is given.
func Chain[T any](hooks ...func(next T) T) func(next T) T {
	hooks = nonNil(hooks)
	if len(hooks) == 0 {
		return nil
	}
	return func(next T) T {
		for i := len(hooks) - 1; i >= 0; i-- {
			next = hooks[i](next)
		}
		return next
	}
}

func nonNil[T any](hooks []func(next T) T) []func(next T) T {
	result := make([]func(next T) T, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			result = append(result, hook)
		}
	}
	return result
}
