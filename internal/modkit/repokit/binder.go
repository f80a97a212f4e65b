package repokit

// Binder builds a repo bound to one Queryer, so the same constructor works
// against the pool and inside a transaction.
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor into a Binder.
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// RequireQueryer panics on a nil Queryer. A nil here is always a wiring
// bug in main, never a runtime condition.
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}

// MustBind validates q then binds.
func MustBind[T any](b Binder[T], q Queryer) T {
	return b.Bind(RequireQueryer(q))
}
