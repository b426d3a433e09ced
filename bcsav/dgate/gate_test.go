package dgate

import (
	"sort"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Open(t *testing.T) {
	jp := Context{Revision: RevisionUncanny, Country: CountryJP}
	en := Context{Revision: RevisionUncanny, Country: CountryEN}

	assert.True(t, Always().Open(jp))
	assert.True(t, Since(RevisionUncanny).Open(jp))
	assert.False(t, Since(RevisionUncanny+1).Open(jp))
	assert.False(t, NotJP().Open(jp))
	assert.True(t, NotJP().Open(en))

	composed := Since(RevisionDojo).And(NotJP())
	assert.False(t, composed.Open(jp))
	assert.True(t, composed.Open(en))
	assert.False(t, composed.Open(Context{Revision: RevisionDojo - 1, Country: CountryEN}))
}

func TestGate_Monotonic(t *testing.T) {
	// a gate that is open at N stays open for every later revision
	for _, boundary := range Boundaries() {
		gate := Since(boundary)
		assert.False(t, gate.Open(Context{Revision: boundary - 1, Country: CountryTW}))
		assert.True(t, gate.Open(Context{Revision: boundary, Country: CountryTW}))
		assert.True(t, gate.Open(Context{Revision: MaxRevision, Country: CountryTW}))
	}
}

func TestBoundaries_Sorted(t *testing.T) {
	boundaries := Boundaries()
	assert.True(t, sort.SliceIsSorted(boundaries, func(i, j int) bool { return boundaries[i] < boundaries[j] }))
	assert.Equal(t, len(boundaries), len(lo.Uniq(boundaries)))
}

func TestWidthRules_Select(t *testing.T) {
	rules := WidthRules{
		{Gate: Since(RevisionLeadership).And(NotJP()), Width: Width32},
		{Gate: Since(RevisionLeadership), Width: Width16},
	}

	width, ok := rules.Select(Context{Revision: RevisionLeadership, Country: CountryJP})
	require.True(t, ok)
	assert.Equal(t, Width16, width)

	width, ok = rules.Select(Context{Revision: RevisionLeadership, Country: CountryKR})
	require.True(t, ok)
	assert.Equal(t, Width32, width)

	_, ok = rules.Select(Context{Revision: RevisionLeadership - 1, Country: CountryKR})
	assert.False(t, ok)
}

func TestParseCountry(t *testing.T) {
	country, err := ParseCountry(" EN ")
	require.NoError(t, err)
	assert.Equal(t, CountryEN, country)

	_, err = ParseCountry("fr")
	assert.Error(t, err)
}

func TestCheckRevision(t *testing.T) {
	assert.Error(t, CheckRevision(0))
	assert.NoError(t, CheckRevision(20))
	assert.NoError(t, CheckRevision(120600))
	assert.Error(t, CheckRevision(MaxRevision+1))
}

func TestGate_String(t *testing.T) {
	assert.Equal(t, "always", Always().String())
	assert.Equal(t, "revision >= 40100 && country != jp", Since(RevisionUncanny).And(NotJP()).String())
}
