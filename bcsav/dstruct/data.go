// Package dstruct holds the decoded save record and the ordered schema that maps it to bytes.
package dstruct

import (
	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
)

type (
	ManagedItemKind uint32
	GatyaEventKind  uint8

	Record struct {
		FormatRevision uint32        `json:"format_revision"`
		Country        dgate.Country `json:"country"`

		// base
		Unknown1         uint8               `json:"unknown_1"`
		MuteMusic        bool                `json:"mute_music"`
		MuteSoundEffects bool                `json:"mute_sound_effects"`
		CatFood          uint32              `json:"cat_food"`
		CurrentEnergy    uint32              `json:"current_energy"`
		LastPlayed       dfield.Timestamp    `json:"last_played"`
		Unknown2         []uint32            `json:"unknown_2"`
		UpgradeState     uint32              `json:"upgrade_state"`
		XP               uint32              `json:"xp"`
		TutorialCleared  bool                `json:"tutorial_cleared"`
		Unknown3         []uint32            `json:"unknown_3"`
		UnlockedSlots    uint8               `json:"unlocked_slots"`
		Lineups          [][]int32           `json:"lineups"`
		SelectedLineup   uint32              `json:"selected_lineup"`
		Story            []StoryChapter      `json:"story"`
		Treasures        [][]uint32          `json:"treasures"`
		EnemyGuide       []uint32            `json:"enemy_guide"`
		Cats             []uint32            `json:"cats"`
		CatUpgrades      []dfield.Upgrade    `json:"cat_upgrades"`
		CurrentForms     []uint32            `json:"current_forms"`
		SpecialSkills    []dfield.Upgrade    `json:"special_skills"`
		BattleItems      []uint32            `json:"battle_items"`
		InquiryCode      string              `json:"inquiry_code"`
		PlayerID         string              `json:"player_id"`
		NormalTickets    uint32              `json:"normal_tickets"`
		RareTickets      uint32              `json:"rare_tickets"`
		EventStages      dfield.ChapterGroup `json:"event_stages"`
		TreasureFestival []uint32            `json:"treasure_festival"`
		ITFTimedScores   [][]uint32          `json:"itf_timed_scores"`

		// gatya
		RareSeed         uint32       `json:"rare_seed"`
		NormalSeed       uint32       `json:"normal_seed"`
		GatyaEvents      []GatyaEvent `json:"gatya_events"`
		UnlockedForms    []uint32     `json:"unlocked_forms"`
		TransferCode     string       `json:"transfer_code"`
		ConfirmationCode string       `json:"confirmation_code"`
		TransferFlag     bool         `json:"transfer_flag"`

		// inventory
		Catfruit          []uint32 `json:"catfruit"`
		Catseyes          []uint32 `json:"catseyes"`
		Catamins          []uint32 `json:"catamins"`
		BaseMaterials     []uint32 `json:"base_materials"`
		CatguideCollected []bool   `json:"catguide_collected"`

		PurchasedPacks   []dfield.Pair[uint32, bool]                          `json:"purchased_packs"`
		SchemeItems      []dfield.GatyaItem                                   `json:"scheme_items"`
		SchemeReceived   []uint32                                             `json:"scheme_received"`
		Outbreaks        []dfield.Pair[uint32, []dfield.Pair[uint32, bool]]   `json:"outbreaks"`
		CurrentOutbreaks []dfield.Pair[uint32, []dfield.Pair[uint32, bool]]   `json:"current_outbreaks"`
		Missions         Missions                                             `json:"missions"`
		Tower            dfield.ChapterGroup                                  `json:"tower"`
		ChallengeScore   uint32                                               `json:"challenge_score"`
		ChallengeCleared bool                                                 `json:"challenge_cleared"`
		Dojo             []dfield.Pair[uint32, []dfield.Pair[uint32, uint32]] `json:"dojo"`
		DojoRanking      DojoRanking                                          `json:"dojo_ranking"`

		Uncanny           dfield.ChapterGroup `json:"uncanny"`
		Unknown112        *Unknown112         `json:"unknown_112"`
		Gamatoto          Gamatoto            `json:"gamatoto"`
		FilibusterStage   uint8               `json:"filibuster_stage"`
		FilibusterEnabled bool                `json:"filibuster_enabled"`
		Talents           []Talent            `json:"talents"`
		NP                uint32              `json:"np"`
		Ototo             Ototo               `json:"ototo"`
		Leadership        uint16              `json:"leadership"`
		Unknown58         uint32              `json:"unknown_58"`

		Medals          Medals                          `json:"medals"`
		Gauntlets       dfield.ChapterGroup             `json:"gauntlets"`
		CollabGauntlets dfield.ChapterGroup             `json:"collab_gauntlets"`
		Enigma          Enigma                          `json:"enigma"`
		ClearedSlots    []ClearedSlot                   `json:"cleared_slots"`
		ClearedStageIDs []dfield.Pair[uint16, []uint16] `json:"cleared_stage_ids"`
		TalentOrbs      []dfield.Pair[uint16, uint16]   `json:"talent_orbs"`
		MaxUpgrades     []dfield.Upgrade                `json:"max_upgrade_levels"`
		CatShrine       CatShrine                       `json:"cat_shrine"`
		SlotNames       []string                        `json:"slot_names"`
		PlatinumTickets uint32                          `json:"platinum_tickets"`
		PlatinumShards  uint32                          `json:"platinum_shards"`
		LegendTickets   uint8                           `json:"legend_tickets"`

		Aku                 dfield.ChapterGroup            `json:"aku"`
		Unknown130          []uint8                        `json:"unknown_130"`
		ZeroLegendsUnlocked bool                           `json:"zero_legends_unlocked"`
		ManagedItems        []ManagedItem                  `json:"managed_items"`
		LoginBonuses        []dfield.Pair[uint32, uint32]  `json:"login_bonuses"`
		ResetTimestamps     ResetTimestamps                `json:"reset_timestamps"`
		OfficerPass         OfficerPass                    `json:"officer_pass"`
		MapResets           []dfield.Pair[uint32, float64] `json:"map_resets"`

		Behemoth         dfield.ChapterGroup           `json:"behemoth"`
		BehemothDefeated []uint32                      `json:"behemoth_defeated"`
		ExtraDialogs     []dfield.Pair[uint32, uint32] `json:"extra_dialogs"`
		LabyrinthMedals  []uint16                      `json:"labyrinth_medals"`

		ZeroLegends dfield.ChapterGroup `json:"zero_legends"`
		GoldenCPU   bool                `json:"golden_cpu"`
		BGMVolume   uint8               `json:"bgm_volume"`
		SEVolume    uint8               `json:"se_volume"`
		Unknown160  uint8               `json:"unknown_160"`
		Unknown161  int32               `json:"unknown_161"`

		// DSTFlags are replayed on encode in the order decode met them.
		DSTFlags []bool `json:"dst_flags"`
		// BoolBytes holds, by field path, the flags stored as a true byte other than 1.
		BoolBytes map[string]uint8 `json:"bool_bytes,omitempty"`
		// OpaqueTail holds the bytes between the last known field and the digest.
		OpaqueTail []byte `json:"opaque_tail"`
		Digest     string `json:"digest"`
	}

	StoryChapter struct {
		SelectedStage uint32   `json:"selected_stage"`
		ClearProgress uint32   `json:"clear_progress"`
		Clears        []uint32 `json:"clears"`
	}
	GatyaEvent struct {
		Kind   GatyaEventKind `json:"kind"`
		Banner uint32         `json:"banner"`
		Pulls  uint32         `json:"pulls"`
	}
	Missions struct {
		States       []dfield.Pair[uint32, uint32] `json:"states"`
		Requirements []dfield.Pair[uint32, uint32] `json:"requirements"`
		ClearTypes   []dfield.Pair[uint32, uint32] `json:"clear_types"`
		Weekly       []dfield.Pair[uint32, bool]   `json:"weekly"`
	}
	DojoRanking struct {
		Score     uint32  `json:"score"`
		Rank      uint32  `json:"rank"`
		Submitted bool    `json:"submitted"`
		Rewarded  bool    `json:"rewarded"`
		Timestamp float64 `json:"timestamp"`
	}
	Unknown112 struct {
		A     uint32  `json:"a"`
		B     uint32  `json:"b"`
		Stamp float64 `json:"stamp"`
	}
	Gamatoto struct {
		XP          uint32   `json:"xp"`
		Destination uint32   `json:"destination"`
		ReconLength uint32   `json:"recon_length"`
		StartTime   float64  `json:"start_time"`
		AdPresent   bool     `json:"ad_present"`
		Helpers     []uint32 `json:"helpers"`
	}
	Talent struct {
		CatID uint32             `json:"cat_id"`
		Items []dfield.GatyaItem `json:"items"`
	}
	Ototo struct {
		Engineers    uint32   `json:"engineers"`
		CannonLevels []uint32 `json:"cannon_levels"`
	}
	Medals struct {
		Earned []uint16                     `json:"earned"`
		New    []dfield.Pair[uint16, uint8] `json:"new"`
	}
	Enigma struct {
		Energy1 uint32        `json:"energy_1"`
		Energy2 uint32        `json:"energy_2"`
		Level   uint8         `json:"level"`
		Unknown bool          `json:"unknown"`
		Stages  []EnigmaStage `json:"stages"`
	}
	EnigmaStage struct {
		Level   uint32  `json:"level"`
		StageID uint32  `json:"stage_id"`
		Status  uint8   `json:"status"`
		Start   float64 `json:"start"`
	}
	ClearedSlot struct {
		Index uint16  `json:"index"`
		Cats  []int16 `json:"cats"`
	}
	CatShrine struct {
		Dialogs    uint32  `json:"dialogs"`
		Stamp1     float64 `json:"stamp_1"`
		Stamp2     float64 `json:"stamp_2"`
		ShrineGone bool    `json:"shrine_gone"`
		Flags      []uint8 `json:"flags"`
		XPOffering uint64  `json:"xp_offering"`
	}
	// ManagedItem is a currency change the game server tracks alongside the save.
	ManagedItem struct {
		Kind      ManagedItemKind `json:"kind"`
		Amount    int32           `json:"amount"`
		Timestamp int64           `json:"timestamp"`
	}
	ResetTimestamps struct {
		Daily  float64 `json:"daily"`
		Weekly float64 `json:"weekly"`
	}
	OfficerPass struct {
		CatID   uint16                      `json:"cat_id"`
		Claimed []dfield.Pair[uint32, bool] `json:"claimed"`
	}

	Section struct {
		Name string
		Gate dgate.Gate
		Walk func(w *dfield.Walker, r *Record)
	}
	TraceEntry struct {
		Offset  int    `json:"offset"`
		Length  int    `json:"length"`
		Section string `json:"section"`
		Gate    string `json:"gate"`
	}
)

const (
	ManagedItemCatFood = ManagedItemKind(iota)
	ManagedItemRareTicket
	ManagedItemPlatinumTicket
	ManagedItemLegendTicket
)

const (
	GatyaEventNormal = GatyaEventKind(iota)
	GatyaEventRare
	GatyaEventCollab
	GatyaEventFirstRare
	GatyaEventFirstRare10
)

const (
	NumStoryChapters  = 10
	NumStoryStages    = 51
	NumTreasureStages = 49
	NumLineupSlots    = 10
	NumUnknown2       = 3
	NumUnknown3       = 12
)
