package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_PushPop(t *testing.T) {
	queue := NewQueue[bool]()
	queue.Push(true)
	queue.Push(false)
	queue.Push(true)

	assert.Equal(t, 3, queue.Len())
	assert.Equal(t, []bool{true, false, true}, queue.Items())

	first, ok := queue.Pop()
	assert.True(t, ok)
	assert.True(t, first)

	second, ok := queue.Pop()
	assert.True(t, ok)
	assert.False(t, second)

	peeked, ok := queue.Peek()
	assert.True(t, ok)
	assert.True(t, peeked)
	assert.Equal(t, 1, queue.Len())
}

func TestQueue_Empty(t *testing.T) {
	queue := NewQueue(1, 2)
	queue.Pop()
	queue.Pop()

	_, ok := queue.Pop()
	assert.False(t, ok)
	_, ok = queue.Peek()
	assert.False(t, ok)
}

func TestQueue_Isolated(t *testing.T) {
	items := []int{1, 2, 3}
	queue := NewQueue(items...)
	queue.Pop()
	assert.Equal(t, []int{1, 2, 3}, items)
}
