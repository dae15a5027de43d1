package tool

// Wrap runs work and normalizes its failure into E. A failure that already is
// an E is passed through as is; any other failure, including one that only
// wraps an E, is handed to wrap, which must keep it as the cause.
func Wrap[T any, E error](wrap func(error) E, work func() (T, error)) (T, error) {
	value, err := work()
	if err == nil {
		return value, nil
	}

	var zero T
	if target, ok := err.(E); ok {
		return zero, target
	}
	return zero, wrap(err)
}

// WrapErr is Wrap for work that produces no value.
func WrapErr[E error](wrap func(error) E, work func() error) error {
	_, err := Wrap(wrap, func() (struct{}, error) {
		return struct{}{}, work()
	})
	return err
}
