// Package dfield walks one schema function in either direction. The same code that decodes a
// field also encodes and clamps it, so the read order and the write order cannot drift apart.
package dfield

import (
	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/lbytes"
	"battlecats-savior/ds"
)

type (
	Mode   int
	Walker struct {
		mode   Mode
		ctx    dgate.Context
		reader *lbytes.Reader
		writer *lbytes.Writer
		dstIn  *ds.Queue[bool]
		dstOut *ds.Queue[bool]
		// boolIn and boolOut hold the true bytes other than 1, keyed by field path.
		boolIn  map[string]uint8
		boolOut map[string]uint8
		path    []string
		err     error
		// onField receives every top level field once it is walked without error.
		onField func(name string, offset int, length int)
	}
	// Pair is one entry of a map-shaped region. Maps keep their wire order, so they are modeled
	// as slices instead of Go maps.
	Pair[K any, V any] struct {
		Key   K `json:"key"`
		Value V `json:"value"`
	}
	Upgrade struct {
		Plus uint32 `json:"plus"`
		Base uint32 `json:"base"`
	}
	// GatyaItem carries a quantity in inventories and a level in talent lists.
	GatyaItem struct {
		ID    uint32 `json:"id"`
		Value uint32 `json:"value"`
	}
	Timestamp struct {
		Year    uint32  `json:"year"`
		Year2   uint32  `json:"year_2"`
		Month   uint32  `json:"month"`
		Month2  uint32  `json:"month_2"`
		Day     uint32  `json:"day"`
		Day2    uint32  `json:"day_2"`
		Seconds float64 `json:"seconds"`
		Hour    uint32  `json:"hour"`
		Minute  uint32  `json:"minute"`
		Second  uint32  `json:"second"`
	}
	ChapterGroupKind int
	// ChapterGroup is the shape shared by event stages, uncanny, gauntlets, tower, aku, behemoth
	// and zero legends. Stars and Stages come from the header and bound every column block.
	ChapterGroup struct {
		Kind     ChapterGroupKind `json:"kind"`
		Stars    uint32           `json:"stars"`
		Stages   uint32           `json:"stages"`
		Chapters []ChapterStars   `json:"chapters"`
	}
	ChapterStars struct {
		Stars []Chapter `json:"stars"`
	}
	Chapter struct {
		SelectedStage uint32   `json:"selected_stage"`
		ClearProgress uint32   `json:"clear_progress"`
		UnlockState   uint32   `json:"unlock_state"`
		Clears        []uint32 `json:"clears"`
		TimedScores   []uint32 `json:"timed_scores,omitempty"`
	}
)

const (
	ModeDecode = Mode(iota)
	ModeEncode
	ModeClamp
)

const (
	ChapterGroupEvent = ChapterGroupKind(iota)
	ChapterGroupUncanny
	ChapterGroupGauntlet
	ChapterGroupCollabGauntlet
	ChapterGroupTower
	ChapterGroupAku
	ChapterGroupBehemoth
	ChapterGroupZeroLegend
)

var (
	chapterGroupKindNames = []string{
		"event",
		"uncanny",
		"gauntlet",
		"collab_gauntlet",
		"tower",
		"aku",
		"behemoth",
		"zero_legend",
	}
)

var (
	Fixed16 = dgate.WidthRules{
		{Gate: dgate.Always(), Width: dgate.Width16},
	}
	// PackedCount is the width of a chapter group's chapter count.
	PackedCount = dgate.WidthRules{
		{Gate: dgate.Since(dgate.RevisionPacked), Width: dgate.Width16},
		{Gate: dgate.Always(), Width: dgate.Width32},
	}
	// PackedSmall covers star and stage counts and the per star selected, progress and unlock
	// values.
	PackedSmall = dgate.WidthRules{
		{Gate: dgate.Since(dgate.RevisionPacked), Width: dgate.Width8},
		{Gate: dgate.Always(), Width: dgate.Width32},
	}
	// PackedStage covers per stage clear counts and timed scores.
	PackedStage = dgate.WidthRules{
		{Gate: dgate.Since(dgate.RevisionPacked), Width: dgate.Width16},
		{Gate: dgate.Always(), Width: dgate.Width32},
	}
)
