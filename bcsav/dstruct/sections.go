package dstruct

import (
	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
)

var (
	// unknown58Width is the one scalar whose width differs between JP and the other countries at
	// the same revision.
	unknown58Width = dgate.WidthRules{
		{Gate: dgate.NotJP(), Width: dgate.Width32},
		{Gate: dgate.Always(), Width: dgate.Width16},
	}
)

// Sections lists the schema in wire order. Every gated section ends with its checkpoint, and
// the walk stops at the first section whose gate is closed.
var Sections = []Section{
	{Name: "base", Gate: dgate.Always(), Walk: walkBase},
	{Name: "events", Gate: dgate.Since(dgate.RevisionEvents), Walk: walkEvents},
	{Name: "treasure_festival", Gate: dgate.Since(dgate.RevisionTreasureFestival), Walk: walkTreasureFestival},
	{Name: "gatya", Gate: dgate.Since(dgate.RevisionGatya), Walk: walkGatya},
	{Name: "inventory", Gate: dgate.Since(dgate.RevisionInventory), Walk: walkInventory},
	{Name: "item_pack", Gate: dgate.Since(dgate.RevisionItemPack), Walk: walkItemPack},
	{Name: "outbreaks", Gate: dgate.Since(dgate.RevisionOutbreaks), Walk: walkOutbreaks},
	{Name: "missions", Gate: dgate.Since(dgate.RevisionMissions), Walk: walkMissions},
	{Name: "tower", Gate: dgate.Since(dgate.RevisionTower), Walk: walkTower},
	{Name: "challenge", Gate: dgate.Since(dgate.RevisionChallenge), Walk: walkChallenge},
	{Name: "dojo", Gate: dgate.Since(dgate.RevisionDojo), Walk: walkDojo},
	{Name: "uncanny", Gate: dgate.Since(dgate.RevisionUncanny), Walk: walkUncanny},
	{Name: "gamatoto", Gate: dgate.Since(dgate.RevisionGamatoto), Walk: walkGamatoto},
	{Name: "talents", Gate: dgate.Since(dgate.RevisionTalents), Walk: walkTalents},
	{Name: "np", Gate: dgate.Since(dgate.RevisionNP), Walk: walkNP},
	{Name: "leadership", Gate: dgate.Since(dgate.RevisionLeadership), Walk: walkLeadership},
	{Name: "medals", Gate: dgate.Since(dgate.RevisionMedals), Walk: walkMedals},
	{Name: "gauntlets", Gate: dgate.Since(dgate.RevisionGauntlets), Walk: walkGauntlets},
	{Name: "gauntlets_2", Gate: dgate.Since(dgate.RevisionCollabGauntlets), Walk: walkCollabGauntlets},
	{Name: "enigma", Gate: dgate.Since(dgate.RevisionEnigma), Walk: walkEnigma},
	{Name: "cleared_slots", Gate: dgate.Since(dgate.RevisionClearedSlots), Walk: walkClearedSlots},
	{Name: "talent_orbs", Gate: dgate.Since(dgate.RevisionTalentOrbs), Walk: walkTalentOrbs},
	{Name: "cat_shrine", Gate: dgate.Since(dgate.RevisionCatShrine), Walk: walkCatShrine},
	{Name: "slot_names", Gate: dgate.Since(dgate.RevisionSlotNames), Walk: walkSlotNames},
	{Name: "platinum", Gate: dgate.Since(dgate.RevisionPlatinum), Walk: walkPlatinum},
	{Name: "aku", Gate: dgate.Since(dgate.RevisionAku), Walk: walkAku},
	{Name: "zero_legends_prep", Gate: dgate.Since(dgate.RevisionZeroLegendsPrep), Walk: walkZeroLegendsPrep},
	{Name: "misc_maps", Gate: dgate.Since(dgate.RevisionMiscMaps), Walk: walkMiscMaps},
	{Name: "behemoth", Gate: dgate.Since(dgate.RevisionBehemoth), Walk: walkBehemoth},
	{Name: "extra_dialogs", Gate: dgate.Since(dgate.RevisionExtraDialogs), Walk: walkExtraDialogs},
	{Name: "labyrinth", Gate: dgate.Since(dgate.RevisionLabyrinth), Walk: walkLabyrinth},
	{Name: "zero_legends", Gate: dgate.Since(dgate.RevisionZeroLegends), Walk: walkZeroLegends},
	{Name: "volume", Gate: dgate.Since(dgate.RevisionVolume), Walk: walkVolume},
	{Name: "tail_scalars", Gate: dgate.Since(dgate.RevisionTailScalars), Walk: walkTailScalars},
}

func walkStoryChapter(w *dfield.Walker, name string, v *StoryChapter) {
	w.Group(name, func() {
		w.U32("selected_stage", &v.SelectedStage)
		w.U32("clear_progress", &v.ClearProgress)
		dfield.FixedList(w, "clears", &v.Clears, NumStoryStages, (*dfield.Walker).U32)
	})
}

func walkBase(w *dfield.Walker, r *Record) {
	w.U8("unknown_1", &r.Unknown1)
	w.Bool("mute_music", &r.MuteMusic)
	w.Bool("mute_sound_effects", &r.MuteSoundEffects)
	w.U32("cat_food", &r.CatFood)
	w.U32("current_energy", &r.CurrentEnergy)
	w.Timestamp("last_played", &r.LastPlayed)
	if w.Open(dgate.NotJP()) {
		w.DST("dst_1")
	}
	dfield.FixedList(w, "unknown_2", &r.Unknown2, NumUnknown2, (*dfield.Walker).U32)
	w.U32("upgrade_state", &r.UpgradeState)
	w.U32("xp", &r.XP)
	w.Bool("tutorial_cleared", &r.TutorialCleared)
	dfield.FixedList(w, "unknown_3", &r.Unknown3, NumUnknown3, (*dfield.Walker).U32)
	w.U8("unlocked_slots", &r.UnlockedSlots)
	dfield.List(w, "lineups", &r.Lineups, dfield.FixedListOf(NumLineupSlots, (*dfield.Walker).I32))
	w.U32("selected_lineup", &r.SelectedLineup)
	dfield.FixedList(w, "story", &r.Story, NumStoryChapters, walkStoryChapter)
	dfield.FixedList(
		w,
		"treasures",
		&r.Treasures,
		NumStoryChapters,
		dfield.FixedListOf(NumTreasureStages, (*dfield.Walker).U32),
	)
	dfield.List(w, "enemy_guide", &r.EnemyGuide, (*dfield.Walker).U32)
	dfield.List(w, "cats", &r.Cats, (*dfield.Walker).U32)
	dfield.List(w, "cat_upgrades", &r.CatUpgrades, (*dfield.Walker).Upgrade)
	dfield.List(w, "current_forms", &r.CurrentForms, (*dfield.Walker).U32)
	dfield.List(w, "special_skills", &r.SpecialSkills, (*dfield.Walker).Upgrade)
	dfield.List(w, "battle_items", &r.BattleItems, (*dfield.Walker).U32)
	w.String("inquiry_code", &r.InquiryCode)
	if w.Open(dgate.NotJP()) {
		w.String("player_id", &r.PlayerID)
	}
	w.U32("normal_tickets", &r.NormalTickets)
	w.U32("rare_tickets", &r.RareTickets)
}

func walkEvents(w *dfield.Walker, r *Record) {
	w.ChapterGroup("event_stages", dfield.ChapterGroupEvent, &r.EventStages)
}

func walkTreasureFestival(w *dfield.Walker, r *Record) {
	dfield.List(w, "treasure_festival", &r.TreasureFestival, (*dfield.Walker).U32)
	dfield.FixedList(
		w,
		"itf_timed_scores",
		&r.ITFTimedScores,
		NumStoryChapters,
		dfield.FixedListOf(NumStoryStages, (*dfield.Walker).U32),
	)
}

func walkGatyaEvent(w *dfield.Walker, name string, v *GatyaEvent) {
	w.Group(name, func() {
		kind := uint8(v.Kind)
		w.U8("kind", &kind)
		v.Kind = GatyaEventKind(kind)
		w.U32("banner", &v.Banner)
		w.U32("pulls", &v.Pulls)
	})
}

func walkGatya(w *dfield.Walker, r *Record) {
	w.U32("rare_seed", &r.RareSeed)
	w.U32("normal_seed", &r.NormalSeed)
	dfield.List(w, "gatya_events", &r.GatyaEvents, walkGatyaEvent)
	if w.Open(dgate.NotJP()) {
		w.DST("dst_2")
	}
	dfield.List(w, "unlocked_forms", &r.UnlockedForms, (*dfield.Walker).U32)
	w.String("transfer_code", &r.TransferCode)
	w.String("confirmation_code", &r.ConfirmationCode)
	w.Bool("transfer_flag", &r.TransferFlag)
}

func walkInventory(w *dfield.Walker, r *Record) {
	dfield.List(w, "catfruit", &r.Catfruit, (*dfield.Walker).U32)
	dfield.List(w, "catseyes", &r.Catseyes, (*dfield.Walker).U32)
	dfield.List(w, "catamins", &r.Catamins, (*dfield.Walker).U32)
	dfield.List(w, "base_materials", &r.BaseMaterials, (*dfield.Walker).U32)
	dfield.List(w, "catguide_collected", &r.CatguideCollected, (*dfield.Walker).Bool)
}

func walkItemPack(w *dfield.Walker, r *Record) {
	dfield.Map(w, "purchased_packs", &r.PurchasedPacks, (*dfield.Walker).U32, (*dfield.Walker).Bool)
	dfield.List(w, "scheme_items", &r.SchemeItems, (*dfield.Walker).GatyaItem)
	dfield.List(w, "scheme_received", &r.SchemeReceived, (*dfield.Walker).U32)
}

func walkOutbreaks(w *dfield.Walker, r *Record) {
	stages := dfield.MapOf((*dfield.Walker).U32, (*dfield.Walker).Bool)
	dfield.Map(w, "outbreaks", &r.Outbreaks, (*dfield.Walker).U32, stages)
	dfield.Map(w, "current_outbreaks", &r.CurrentOutbreaks, (*dfield.Walker).U32, stages)
}

func walkMissions(w *dfield.Walker, r *Record) {
	w.Group("missions", func() {
		dfield.Map(w, "states", &r.Missions.States, (*dfield.Walker).U32, (*dfield.Walker).U32)
		dfield.Map(w, "requirements", &r.Missions.Requirements, (*dfield.Walker).U32, (*dfield.Walker).U32)
		dfield.Map(w, "clear_types", &r.Missions.ClearTypes, (*dfield.Walker).U32, (*dfield.Walker).U32)
		dfield.Map(w, "weekly", &r.Missions.Weekly, (*dfield.Walker).U32, (*dfield.Walker).Bool)
	})
}

func walkTower(w *dfield.Walker, r *Record) {
	w.ChapterGroup("tower", dfield.ChapterGroupTower, &r.Tower)
}

func walkChallenge(w *dfield.Walker, r *Record) {
	w.U32("challenge_score", &r.ChallengeScore)
	w.Bool("challenge_cleared", &r.ChallengeCleared)
}

func walkDojo(w *dfield.Walker, r *Record) {
	scores := dfield.MapOf((*dfield.Walker).U32, (*dfield.Walker).U32)
	dfield.Map(w, "dojo", &r.Dojo, (*dfield.Walker).U32, scores)
	w.Group("dojo_ranking", func() {
		w.U32("score", &r.DojoRanking.Score)
		w.U32("rank", &r.DojoRanking.Rank)
		w.Bool("submitted", &r.DojoRanking.Submitted)
		w.Bool("rewarded", &r.DojoRanking.Rewarded)
		w.F64("timestamp", &r.DojoRanking.Timestamp)
	})
}

func walkUnknown112(w *dfield.Walker, name string, v *Unknown112) {
	w.Group(name, func() {
		w.U32("a", &v.A)
		w.U32("b", &v.B)
		w.F64("stamp", &v.Stamp)
	})
}

func walkUncanny(w *dfield.Walker, r *Record) {
	w.ChapterGroup("uncanny", dfield.ChapterGroupUncanny, &r.Uncanny)
	if w.Open(dgate.NotJP()) {
		dfield.Optional(w, "unknown_112", &r.Unknown112, walkUnknown112)
		w.DST("dst_3")
	}
}

func walkGamatoto(w *dfield.Walker, r *Record) {
	w.Group("gamatoto", func() {
		w.U32("xp", &r.Gamatoto.XP)
		w.U32("destination", &r.Gamatoto.Destination)
		w.U32("recon_length", &r.Gamatoto.ReconLength)
		w.F64("start_time", &r.Gamatoto.StartTime)
		w.Bool("ad_present", &r.Gamatoto.AdPresent)
		dfield.List(w, "helpers", &r.Gamatoto.Helpers, (*dfield.Walker).U32)
	})
	w.U8("filibuster_stage", &r.FilibusterStage)
	w.Bool("filibuster_enabled", &r.FilibusterEnabled)
}

func walkTalent(w *dfield.Walker, name string, v *Talent) {
	w.Group(name, func() {
		w.U32("cat_id", &v.CatID)
		dfield.List(w, "items", &v.Items, (*dfield.Walker).GatyaItem)
	})
}

func walkTalents(w *dfield.Walker, r *Record) {
	dfield.List(w, "talents", &r.Talents, walkTalent)
}

func walkNP(w *dfield.Walker, r *Record) {
	w.U32("np", &r.NP)
	w.Group("ototo", func() {
		w.U32("engineers", &r.Ototo.Engineers)
		dfield.List(w, "cannon_levels", &r.Ototo.CannonLevels, (*dfield.Walker).U32)
	})
}

func walkLeadership(w *dfield.Walker, r *Record) {
	w.U16("leadership", &r.Leadership)
	w.Uint("unknown_58", unknown58Width, &r.Unknown58)
}

func walkMedals(w *dfield.Walker, r *Record) {
	w.Group("medals", func() {
		dfield.List(w, "earned", &r.Medals.Earned, (*dfield.Walker).U16)
		dfield.Map(w, "new", &r.Medals.New, (*dfield.Walker).U16, (*dfield.Walker).U8)
	})
}

func walkGauntlets(w *dfield.Walker, r *Record) {
	w.ChapterGroup("gauntlets", dfield.ChapterGroupGauntlet, &r.Gauntlets)
}

func walkCollabGauntlets(w *dfield.Walker, r *Record) {
	w.ChapterGroup("collab_gauntlets", dfield.ChapterGroupCollabGauntlet, &r.CollabGauntlets)
}

func walkEnigmaStage(w *dfield.Walker, name string, v *EnigmaStage) {
	w.Group(name, func() {
		w.U32("level", &v.Level)
		w.U32("stage_id", &v.StageID)
		w.U8("status", &v.Status)
		w.F64("start", &v.Start)
	})
}

func walkEnigma(w *dfield.Walker, r *Record) {
	w.Group("enigma", func() {
		w.U32("energy_1", &r.Enigma.Energy1)
		w.U32("energy_2", &r.Enigma.Energy2)
		w.U8("level", &r.Enigma.Level)
		w.Bool("unknown", &r.Enigma.Unknown)
		dfield.List(w, "stages", &r.Enigma.Stages, walkEnigmaStage)
	})
}

func walkClearedSlot(w *dfield.Walker, name string, v *ClearedSlot) {
	w.Group(name, func() {
		w.U16("index", &v.Index)
		dfield.FixedList(w, "cats", &v.Cats, NumLineupSlots, (*dfield.Walker).I16)
	})
}

func walkClearedSlots(w *dfield.Walker, r *Record) {
	dfield.List(w, "cleared_slots", &r.ClearedSlots, walkClearedSlot)
	stageIDs := dfield.ListOf((*dfield.Walker).U16)
	dfield.Map(w, "cleared_stage_ids", &r.ClearedStageIDs, (*dfield.Walker).U16, stageIDs)
}

func walkTalentOrbs(w *dfield.Walker, r *Record) {
	dfield.Map(w, "talent_orbs", &r.TalentOrbs, (*dfield.Walker).U16, (*dfield.Walker).U16)
	dfield.List(w, "max_upgrade_levels", &r.MaxUpgrades, (*dfield.Walker).Upgrade)
}

func walkCatShrine(w *dfield.Walker, r *Record) {
	w.Group("cat_shrine", func() {
		w.U32("dialogs", &r.CatShrine.Dialogs)
		if w.Open(dgate.NotJP()) {
			w.DST("dst_4")
		}
		w.F64("stamp_1", &r.CatShrine.Stamp1)
		w.F64("stamp_2", &r.CatShrine.Stamp2)
		w.Bool("shrine_gone", &r.CatShrine.ShrineGone)
		dfield.List(w, "flags", &r.CatShrine.Flags, (*dfield.Walker).U8)
		w.U64("xp_offering", &r.CatShrine.XPOffering)
	})
}

func walkSlotNames(w *dfield.Walker, r *Record) {
	dfield.List(w, "slot_names", &r.SlotNames, (*dfield.Walker).String)
}

func walkPlatinum(w *dfield.Walker, r *Record) {
	w.U32("platinum_tickets", &r.PlatinumTickets)
	w.U32("platinum_shards", &r.PlatinumShards)
	w.U8("legend_tickets", &r.LegendTickets)
}

func walkAku(w *dfield.Walker, r *Record) {
	w.ChapterGroup("aku", dfield.ChapterGroupAku, &r.Aku)
}

func walkZeroLegendsPrep(w *dfield.Walker, r *Record) {
	dfield.List(w, "unknown_130", &r.Unknown130, (*dfield.Walker).U8)
	w.Bool("zero_legends_unlocked", &r.ZeroLegendsUnlocked)
}

func walkManagedItem(w *dfield.Walker, name string, v *ManagedItem) {
	w.Group(name, func() {
		kind := uint32(v.Kind)
		w.U32("kind", &kind)
		v.Kind = ManagedItemKind(kind)
		w.I32("amount", &v.Amount)
		w.I64("timestamp", &v.Timestamp)
	})
}

func walkMiscMaps(w *dfield.Walker, r *Record) {
	dfield.List(w, "managed_items", &r.ManagedItems, walkManagedItem)
	dfield.Map(w, "login_bonuses", &r.LoginBonuses, (*dfield.Walker).U32, (*dfield.Walker).U32)
	w.Group("reset_timestamps", func() {
		w.F64("daily", &r.ResetTimestamps.Daily)
		w.F64("weekly", &r.ResetTimestamps.Weekly)
	})
	w.Group("officer_pass", func() {
		w.U16("cat_id", &r.OfficerPass.CatID)
		dfield.Map(w, "claimed", &r.OfficerPass.Claimed, (*dfield.Walker).U32, (*dfield.Walker).Bool)
	})
	dfield.Map(w, "map_resets", &r.MapResets, (*dfield.Walker).U32, (*dfield.Walker).F64)
}

func walkBehemoth(w *dfield.Walker, r *Record) {
	w.ChapterGroup("behemoth", dfield.ChapterGroupBehemoth, &r.Behemoth)
	dfield.List(w, "behemoth_defeated", &r.BehemothDefeated, (*dfield.Walker).U32)
}

func walkExtraDialogs(w *dfield.Walker, r *Record) {
	dfield.Map(w, "extra_dialogs", &r.ExtraDialogs, (*dfield.Walker).U32, (*dfield.Walker).U32)
}

func walkLabyrinth(w *dfield.Walker, r *Record) {
	dfield.List(w, "labyrinth_medals", &r.LabyrinthMedals, (*dfield.Walker).U16)
}

func walkZeroLegends(w *dfield.Walker, r *Record) {
	w.ChapterGroup("zero_legends", dfield.ChapterGroupZeroLegend, &r.ZeroLegends)
	w.Bool("golden_cpu", &r.GoldenCPU)
}

func walkVolume(w *dfield.Walker, r *Record) {
	w.U8("bgm_volume", &r.BGMVolume)
	w.U8("se_volume", &r.SEVolume)
}

func walkTailScalars(w *dfield.Walker, r *Record) {
	w.U8("unknown_160", &r.Unknown160)
	w.I32("unknown_161", &r.Unknown161)
}
