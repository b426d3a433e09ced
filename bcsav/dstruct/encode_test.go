package dstruct

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
)

func TestNewRecord_Shapes(t *testing.T) {
	r, err := NewRecord(dgate.RevisionTailScalars, dgate.CountryTW)
	require.NoError(t, err)

	assert.Len(t, r.Story, NumStoryChapters)
	for _, chapter := range r.Story {
		assert.Len(t, chapter.Clears, NumStoryStages)
	}
	assert.Len(t, r.Treasures, NumStoryChapters)
	assert.Len(t, r.Treasures[9], NumTreasureStages)
	assert.Len(t, r.ITFTimedScores, NumStoryChapters)
	assert.Len(t, r.Unknown2, NumUnknown2)
	assert.Len(t, r.Unknown3, NumUnknown3)
	assert.Len(t, r.DSTFlags, 4)
	assert.Equal(t, dfield.ChapterGroupZeroLegend, r.ZeroLegends.Kind)
	assert.Equal(t, dfield.ChapterGroupBehemoth, r.Behemoth.Kind)

	jp, err := NewRecord(dgate.RevisionTailScalars, dgate.CountryJP)
	require.NoError(t, err)
	assert.Empty(t, jp.DSTFlags)
}

func TestNewRecord_Invalid(t *testing.T) {
	_, err := NewRecord(0, dgate.CountryEN)
	assert.Error(t, err)

	_, err = NewRecord(dgate.RevisionEvents, dgate.Country("xx"))
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	r, err := NewRecord(dgate.RevisionMedals, dgate.CountryJP)
	require.NoError(t, err)

	r.Unknown58 = 70000
	r.CatUpgrades = []dfield.Upgrade{{Plus: 70000, Base: 5}}
	r.EventStages = dfield.ChapterGroup{
		Stars:    1,
		Stages:   1,
		Chapters: []dfield.ChapterStars{{Stars: []dfield.Chapter{{SelectedStage: 300}}}},
	}
	r.Lineups = [][]int32{{1, 2}}
	require.NoError(t, Clamp(r))

	assert.Equal(t, uint32(65535), r.Unknown58)
	assert.Equal(t, uint32(65535), r.CatUpgrades[0].Plus)
	assert.Equal(t, uint32(255), r.EventStages.Chapters[0].Stars[0].SelectedStage)
	assert.Equal(t, []uint32{0}, r.EventStages.Chapters[0].Stars[0].Clears)
	assert.Len(t, r.Lineups[0], NumLineupSlots)

	r.Country = dgate.CountryEN
	r.Unknown58 = 70000
	require.NoError(t, Clamp(r))
	assert.Equal(t, uint32(70000), r.Unknown58)
}

func TestEncode_LengthPrefixes(t *testing.T) {
	r, err := NewRecord(dgate.RevisionGatya, dgate.CountryEN)
	require.NoError(t, err)

	r.TransferCode = "abcde"
	_, short, _ := roundTrip(t, r)
	r.TransferCode = "abcdefg"
	_, long, _ := roundTrip(t, r)

	shortEntry, _ := short.Get("transfer_code")
	longEntry, _ := long.Get("transfer_code")
	assert.Equal(t, shortEntry.Offset, longEntry.Offset)
	assert.Equal(t, 4+5, shortEntry.Length)
	assert.Equal(t, 4+7, longEntry.Length)

	shortNext, _ := short.Get("confirmation_code")
	longNext, _ := long.Get("confirmation_code")
	assert.Equal(t, shortNext.Offset+2, longNext.Offset)
}

func TestEncode_RejectsOverflowingHeader(t *testing.T) {
	r, err := NewRecord(dgate.RevisionTailScalars, dgate.CountryEN)
	require.NoError(t, err)
	r.EventStages = dfield.ChapterGroup{
		Stars:    1,
		Stages:   300,
		Chapters: []dfield.ChapterStars{{Stars: []dfield.Chapter{{Clears: make([]uint32, 300)}}}},
	}

	_, err = Encode(r)
	driftErr := dfield.ErrSchemaDrift{}
	require.True(t, errors.As(err, &driftErr))
	assert.Equal(t, "event_stages.stage_count", driftErr.Field)

	require.NoError(t, Clamp(r))
	assert.Equal(t, uint32(255), r.EventStages.Stages)
	assert.Len(t, r.EventStages.Chapters[0].Stars[0].Clears, 255)
	_, err = Encode(r)
	assert.NoError(t, err)
}

func TestSections_Ordered(t *testing.T) {
	gates := make([]uint32, 0, len(Sections))
	for _, section := range Sections[1:] {
		gates = append(gates, section.Gate.Since)
	}
	assert.Equal(t, dgate.Boundaries(), gates)
	assert.Equal(t, dgate.RevisionTailScalars, LastKnownGate())

	section, ok := FindSection("uncanny")
	require.True(t, ok)
	assert.Equal(t, dgate.RevisionUncanny, section.Gate.Since)

	open := OpenSections(dgate.Context{Revision: dgate.RevisionTower, Country: dgate.CountryEN})
	assert.Equal(t, "tower", open[len(open)-1].Name)
}

func TestFieldSection(t *testing.T) {
	cases := map[string]string{
		"cat_food":         "base",
		"player_id":        "base",
		"transfer_code":    "gatya",
		"unknown_112":      "uncanny",
		"cat_shrine":       "cat_shrine",
		"gv_90300":         "cat_shrine",
		"golden_cpu":       "zero_legends",
		"unknown_161":      "tail_scalars",
		"missions":         "missions",
		"collab_gauntlets": "gauntlets_2",
	}
	for field, expected := range cases {
		section, ok := FieldSection(field)
		require.True(t, ok, field)
		assert.Equal(t, expected, section.Name, field)
	}

	_, ok := FieldSection("opaque_tail")
	assert.False(t, ok)
}
