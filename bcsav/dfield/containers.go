package dfield

import (
	"strconv"

	"github.com/samber/lo"
)

func walkEach[T any](w *Walker, items []T, elem func(*Walker, string, *T)) {
	for i := range items {
		if w.err != nil {
			return
		}
		elem(w, strconv.Itoa(i), &items[i])
	}
}

// List walks a u32 count followed by that many elements. Decoding never reserves more slots
// than there are bytes left, so a corrupt count fails on EOF instead of exhausting memory.
func List[T any](w *Walker, name string, v *[]T, elem func(*Walker, string, *T)) {
	if w.err != nil {
		return
	}
	start := w.enter(name)
	defer w.leave(start)

	switch w.mode {
	case ModeDecode:
		n, err := w.reader.ReadLength()
		if err != nil {
			w.fail(err)
			return
		}
		items := make([]T, 0, lo.Min([]int{n, w.reader.Remaining()}))
		for i := 0; i < n && w.err == nil; i++ {
			var item T
			elem(w, strconv.Itoa(i), &item)
			items = append(items, item)
		}
		*v = items
	case ModeEncode:
		w.writer.WriteLength(len(*v))
		walkEach(w, *v, elem)
	case ModeClamp:
		walkEach(w, *v, elem)
	}
}

// FixedList walks exactly n elements with no count on the wire. Encoding pads a short slice with
// zero values and ignores extra elements; clamping resizes the slice itself.
func FixedList[T any](w *Walker, name string, v *[]T, n int, elem func(*Walker, string, *T)) {
	if w.err != nil {
		return
	}
	start := w.enter(name)
	defer w.leave(start)

	switch w.mode {
	case ModeDecode:
		items := make([]T, n)
		walkEach(w, items, elem)
		*v = items
	case ModeEncode:
		for i := 0; i < n && w.err == nil; i++ {
			if i < len(*v) {
				elem(w, strconv.Itoa(i), &(*v)[i])
				continue
			}
			var zero T
			elem(w, strconv.Itoa(i), &zero)
		}
	case ModeClamp:
		*v = resize(*v, n)
		walkEach(w, *v, elem)
	}
}

func resize[T any](items []T, n int) []T {
	if len(items) >= n {
		return items[:n]
	}
	return append(items, make([]T, n-len(items))...)
}

// Map walks a u32 count followed by alternating keys and values.
func Map[K any, V any](
	w *Walker,
	name string,
	v *[]Pair[K, V],
	key func(*Walker, string, *K),
	value func(*Walker, string, *V),
) {
	List(w, name, v, func(w *Walker, name string, pair *Pair[K, V]) {
		w.Group(name, func() {
			key(w, "key", &pair.Key)
			value(w, "value", &pair.Value)
		})
	})
}

// Optional walks a one byte presence tag followed by the block when the tag is nonzero. A nil
// pointer is written as an absent block.
func Optional[T any](w *Walker, name string, v **T, elem func(*Walker, string, *T)) {
	w.Group(name, func() {
		present := *v != nil
		w.Bool("present", &present)
		if w.err != nil {
			return
		}
		if !present {
			*v = nil
			return
		}
		if *v == nil {
			*v = new(T)
		}
		elem(w, "value", *v)
	})
}

// ListOf adapts a container walk into an element function, for lists of lists.
func ListOf[T any](elem func(*Walker, string, *T)) func(*Walker, string, *[]T) {
	return func(w *Walker, name string, v *[]T) {
		List(w, name, v, elem)
	}
}

func FixedListOf[T any](n int, elem func(*Walker, string, *T)) func(*Walker, string, *[]T) {
	return func(w *Walker, name string, v *[]T) {
		FixedList(w, name, v, n, elem)
	}
}

func MapOf[K any, V any](
	key func(*Walker, string, *K),
	value func(*Walker, string, *V),
) func(*Walker, string, *[]Pair[K, V]) {
	return func(w *Walker, name string, v *[]Pair[K, V]) {
		Map(w, name, v, key, value)
	}
}
