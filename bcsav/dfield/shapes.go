package dfield

import (
	"math"
	"strconv"

	"github.com/samber/lo"

	"battlecats-savior/bcsav/lbytes"
)

func (w *Walker) Upgrade(name string, v *Upgrade) {
	w.Group(name, func() {
		w.Uint("plus", Fixed16, &v.Plus)
		w.Uint("base", Fixed16, &v.Base)
	})
}

func (w *Walker) GatyaItem(name string, v *GatyaItem) {
	w.Group(name, func() {
		w.U32("id", &v.ID)
		w.U32("value", &v.Value)
	})
}

func (w *Walker) Timestamp(name string, v *Timestamp) {
	w.Group(name, func() {
		w.U32("year", &v.Year)
		w.U32("year_2", &v.Year2)
		w.U32("month", &v.Month)
		w.U32("month_2", &v.Month2)
		w.U32("day", &v.Day)
		w.U32("day_2", &v.Day2)
		w.F64("seconds", &v.Seconds)
		w.U32("hour", &v.Hour)
		w.U32("minute", &v.Minute)
		w.U32("second", &v.Second)
	})
}

// ChapterGroup walks the header once and lays every column block out against it: selected
// stage, clear progress and unlock state per star, then clear counts per stage, then timed scores
// for the kinds that carry them.
func (w *Walker) ChapterGroup(name string, kind ChapterGroupKind, v *ChapterGroup) {
	w.Group(name, func() {
		if w.mode != ModeEncode {
			v.Kind = kind
		}

		count := uint32(len(v.Chapters))
		w.Uint("chapter_count", PackedCount, &count)
		w.Uint("stage_count", PackedSmall, &v.Stages)
		w.Uint("star_count", PackedSmall, &v.Stars)
		if w.err != nil {
			return
		}

		switch w.mode {
		case ModeDecode:
			if !w.reserve(count, v.Stars, v.Stages) {
				return
			}
			v.Chapters = makeChapters(count, v.Stars, v.Stages, kind.Timed())
		case ModeClamp:
			v.Chapters = reshapeChapters(v.Chapters, count, v.Stars, v.Stages, kind.Timed())
		}

		c, s, n := int(count), int(v.Stars), int(v.Stages)
		scratch := Chapter{
			Clears:      make([]uint32, n),
			TimedScores: make([]uint32, n),
		}
		at := func(i int, j int) *Chapter {
			if i < len(v.Chapters) && j < len(v.Chapters[i].Stars) {
				return &v.Chapters[i].Stars[j]
			}
			return &scratch
		}
		perStar := func(column string, field func(*Chapter) *uint32) {
			w.Group(column, func() {
				for i := 0; i < c; i++ {
					for j := 0; j < s; j++ {
						w.Uint(strconv.Itoa(i*s+j), PackedSmall, field(at(i, j)))
					}
				}
			})
		}
		perStage := func(column string, stages func(*Chapter) []uint32) {
			w.Group(column, func() {
				for i := 0; i < c; i++ {
					for j := 0; j < s; j++ {
						values := stages(at(i, j))
						for k := 0; k < n; k++ {
							if k < len(values) {
								w.Uint(strconv.Itoa((i*s+j)*n+k), PackedStage, &values[k])
								continue
							}
							var zero uint32
							w.Uint(strconv.Itoa((i*s+j)*n+k), PackedStage, &zero)
						}
					}
				}
			})
		}

		perStar("selected_stage", func(ch *Chapter) *uint32 { return &ch.SelectedStage })
		perStar("clear_progress", func(ch *Chapter) *uint32 { return &ch.ClearProgress })
		perStar("unlock_state", func(ch *Chapter) *uint32 { return &ch.UnlockState })
		perStage("clears", func(ch *Chapter) []uint32 { return ch.Clears })
		if kind.Timed() {
			perStage("timed_scores", func(ch *Chapter) []uint32 { return ch.TimedScores })
		}
	})
}

// reserve fails with an EOF error unless the remaining bytes could hold one byte per chapter,
// per star and per stage of the header. It keeps a corrupt header from allocating before the
// read fails, including headers whose chapters claim no stars at all.
func (w *Walker) reserve(count uint32, stars uint32, stages uint32) bool {
	remaining := uint64(w.reader.Remaining())
	cells := uint64(count) * uint64(stars)
	needed := lo.Max([]uint64{uint64(count), cells})
	if cells <= remaining {
		needed = lo.Max([]uint64{uint64(count), cells + cells*uint64(stages)})
	}
	if needed <= remaining {
		return true
	}
	missing := needed - remaining
	if missing > math.MaxInt32 {
		missing = math.MaxInt32
	}
	w.fail(lbytes.ErrUnexpectedEOF{Offset: w.reader.Position(), Needed: int(missing)})
	return false
}

func makeChapters(count uint32, stars uint32, stages uint32, timed bool) []ChapterStars {
	return reshapeChapters(nil, count, stars, stages, timed)
}

func reshapeChapters(chapters []ChapterStars, count uint32, stars uint32, stages uint32, timed bool) []ChapterStars {
	chapters = resize(chapters, int(count))
	for i := range chapters {
		chapters[i].Stars = resize(chapters[i].Stars, int(stars))
		for j := range chapters[i].Stars {
			star := &chapters[i].Stars[j]
			star.Clears = resize(star.Clears, int(stages))
			if timed {
				star.TimedScores = resize(star.TimedScores, int(stages))
			} else {
				star.TimedScores = nil
			}
		}
	}
	return chapters
}
