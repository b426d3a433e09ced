package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkedHashMap_Keys(t *testing.T) {
	lhm := NewLinkedHashMap[string, int]()

	assert.True(t, len(lhm.Keys()) == 0)

	lhm.Put("a", 1)
	lhm.Put("b", 2)
	lhm.Put("a", 3)

	assert.Equal(t, []string{"a", "b"}, lhm.Keys())
	assert.Equal(t, []int{3, 2}, lhm.Values())
	assert.Equal(t, 2, lhm.Len())
}

func TestLinkedHashMap_Put(t *testing.T) {
	lhm := NewLinkedHashMap[string, any]()
	lhm.Put("abc", 1)
	lhm.Put("abc", 1)

	assert.Equal(t, lhm.hashMap, map[string]any{"abc": 1})
}

func TestLinkedHashMap_Get(t *testing.T) {
	lhm := NewLinkedHashMap[string, int]()
	lhm.Put("cat_food", 40)

	value, ok := lhm.Get("cat_food")
	assert.True(t, ok)
	assert.Equal(t, 40, value)

	_, ok = lhm.Get("xp")
	assert.False(t, ok)
}

func TestLinkedHashMap_ToJSON(t *testing.T) {
	lhm := NewLinkedHashMap[string, any]()
	lhm.Put("def", 1)
	lhm.Put("abc", 2)

	bs, err := lhm.ToJSON()
	assert.NoError(t, err)

	assert.Equal(t, []byte(`{"def":1,"abc":2}`), bs)
}
