// Package dgate decides which schema entries exist in a save: every entry carries at most one
// revision predicate, optionally composed with a country predicate.
package dgate

type (
	Country string
	// Context is fixed before the first gated field is reached: the revision is the first field of
	// every save and the country comes from the caller or from digest autodetection.
	Context struct {
		Revision uint32  `json:"revision"`
		Country  Country `json:"country"`
	}
	Gate struct {
		Since uint32 `json:"since"`
		NotJP bool   `json:"not_jp"`
	}
	Width     int
	WidthRule struct {
		Gate  Gate
		Width Width
	}
	WidthRules []WidthRule
)

const (
	CountryJP = Country("jp")
	CountryEN = Country("en")
	CountryKR = Country("kr")
	CountryTW = Country("tw")
)

const (
	Width8  = Width(1)
	Width16 = Width(2)
	Width32 = Width(4)
)

const (
	MinRevision = uint32(1)
	MaxRevision = uint32(999999)
)

// Revision boundaries, encoded the way the game stores its version: 12.6.0 is 120600.
const (
	RevisionEvents           = uint32(20100)
	RevisionTreasureFestival = uint32(20500)
	RevisionGatya            = uint32(26000)
	RevisionInventory        = uint32(30000)
	RevisionItemPack         = uint32(30300)
	RevisionOutbreaks        = uint32(30400)
	RevisionMissions         = uint32(30500)
	RevisionTower            = uint32(30700)
	RevisionChallenge        = uint32(30800)
	RevisionDojo             = uint32(40000)
	RevisionUncanny          = uint32(40100)
	RevisionGamatoto         = uint32(50000)
	RevisionTalents          = uint32(60000)
	RevisionNP               = uint32(70000)
	RevisionLeadership       = uint32(70500)
	RevisionMedals           = uint32(80000)
	RevisionGauntlets        = uint32(80200)
	RevisionCollabGauntlets  = uint32(80300)
	RevisionEnigma           = uint32(80500)
	RevisionClearedSlots     = uint32(80700)
	RevisionTalentOrbs       = uint32(90000)
	RevisionCatShrine        = uint32(90300)
	RevisionSlotNames        = uint32(90500)
	RevisionPlatinum         = uint32(90700)
	RevisionAku              = uint32(100000)
	RevisionZeroLegendsPrep  = uint32(100400)
	RevisionMiscMaps         = uint32(100600)
	RevisionBehemoth         = uint32(110000)
	RevisionExtraDialogs     = uint32(110400)
	RevisionLabyrinth        = uint32(110700)
	RevisionZeroLegends      = uint32(120000)
	RevisionVolume           = uint32(120200)
	RevisionTailScalars      = uint32(120600)
	// RevisionPacked is where chapter group headers and stage counters shrink from u32 to u8/u16.
	RevisionPacked = RevisionMedals
)

var (
	Countries = []Country{CountryJP, CountryEN, CountryKR, CountryTW}
)
