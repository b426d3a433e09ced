package ds

// Queue is a FIFO. The save codec uses it for flags that are consumed in the same order they
// were produced.
type Queue[T any] struct {
	slice []T
}

func NewQueue[T any](ts ...T) *Queue[T] {
	return &Queue[T]{
		slice: ShallowCopy(ts),
	}
}

func (r *Queue[T]) Len() int {
	return len(r.slice)
}

func (r *Queue[T]) Push(t T) T {
	r.slice = append(r.slice, t)
	return t
}

// Pop removes and returns the first item; ok is false when the queue is empty.
func (r *Queue[T]) Pop() (T, bool) {
	var zero T
	if r.Len() == 0 {
		return zero, false
	}
	first := r.slice[0]
	r.slice = r.slice[1:]
	return first, true
}

func (r *Queue[T]) Peek() (T, bool) {
	var zero T
	if r.Len() == 0 {
		return zero, false
	}
	return r.slice[0], true
}

func (r *Queue[T]) Items() []T {
	return ShallowCopy(r.slice)
}
