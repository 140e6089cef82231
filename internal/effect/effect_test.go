package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
	"gear-optimizer/internal/vary"
)

func TestProcFrequency(t *testing.T) {
	tests := []struct {
		name    string
		icd     float64
		trigger float64
		want    float64
	}{
		{name: "no trigger", icd: 5, trigger: 0, want: 0},
		{name: "negative trigger", icd: 5, trigger: -1, want: 0},
		{name: "always off cooldown", icd: 5, trigger: 0.1, want: 0.1},
		{name: "cooldown bound", icd: 5, trigger: 1, want: 1 / 5.5},
		{name: "frequent trigger", icd: 2, trigger: 4, want: 1 / 2.125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProcFrequency(tt.icd, tt.trigger), 1e-12)
		})
	}
}

func TestNoEffectIdempotent(t *testing.T) {
	s0 := stats.BaseStats.Add(stats.Stats{stats.Ferocity: 300})
	var m0 stats.Modifiers
	c0 := combat.Second{Strike: combat.NewEvent(2.5, 1.1), Cast: 1.2}

	for _, e := range []Effect{NoEffect, Chain(), Chain(NoEffect, NoEffect), Then(NoEffect, Base{})} {
		s1, m1, c1 := Apply(e, s0, m0, c0)
		s2, m2, c2 := Apply(e, s1, m1, c1)
		assert.Equal(t, s1, s2)
		assert.Equal(t, m1, m2)
		assert.Equal(t, c1, c2)
		assert.Equal(t, s0, s1)
	}
}

func TestStageOrder(t *testing.T) {
	var order []string
	record := func(name string) Effect {
		return Chain(
			Permanent(func(*stats.Stats, *stats.Modifiers) { order = append(order, name+".perm") }),
			Distribute(func(*stats.Stats, *stats.Modifiers) { order = append(order, name+".dist") }),
		)
	}
	e := Chain(record("a"), record("b"))
	e.AddPermanent(&stats.Stats{}, &stats.Modifiers{})
	e.Distribute(&stats.Stats{}, &stats.Modifiers{})
	assert.Equal(t, []string{"a.perm", "b.perm", "a.dist", "b.dist"}, order)
}

func TestDistributeSeesPermanent(t *testing.T) {
	e := Chain(
		Distribute(func(s *stats.Stats, _ *stats.Modifiers) { s[stats.Ferocity] += s[stats.Vitality] * 0.1 }),
		Permanent(func(s *stats.Stats, _ *stats.Modifiers) { s[stats.Vitality] += 1000 }),
	)
	s, _, _ := Apply(e, stats.BaseStats, stats.Modifiers{}, combat.Second{})
	assert.InDelta(t, 200.0, s[stats.Ferocity], 1e-9)
}

func TestProcFeedbackConverges(t *testing.T) {
	// Fury on crit raises crit chance, which raises the fury proc rate.
	e := Chain(
		Procs(func(events, c *combat.Second) {
			freq := ProcFrequency(1, events.Crit)
			c.Boon[stats.Fury] = c.Boon[stats.Fury].Add(combat.Single(0.5).Scale(freq))
		}),
		Fury,
	)
	base := combat.Second{Strike: combat.NewEvent(2, 0)}
	s, m, c := Apply(e, stats.BaseStats, stats.Modifiers{}, base)

	assert.Greater(t, s.CritChance(&m), stats.BaseStats.CritChance(&stats.Modifiers{}))
	assert.InDelta(t, c.Strike.Count*s.CritChance(&m)/100, c.Crit, 1e-12)
	assert.Greater(t, c.Boon[stats.Fury].Strength, 0.0)
}

func TestMightFromCombat(t *testing.T) {
	var c combat.Second
	c.Boon[stats.Might] = combat.Single(10)
	s, _, _ := Apply(Might, stats.BaseStats, stats.Modifiers{}, c)
	assert.InDelta(t, 1300.0, s[stats.Power], 1e-9)
	assert.InDelta(t, 300.0, s[stats.ConditionDamage], 1e-9)
}

func TestFixedMightCapped(t *testing.T) {
	s, _, _ := Apply(FixedMight(100), stats.BaseStats, stats.Modifiers{}, combat.Second{})
	assert.InDelta(t, 1000.0+25*30, s[stats.Power], 1e-9)

	m := stats.Modifiers{}
	m.BoonPoints[stats.Fury] = 0.5
	_, m2, _ := Apply(FixedFury(0.2), stats.Stats{}, m, combat.Second{})
	assert.InDelta(t, 0.7*25, m2.CritChance, 1e-9)
}

func TestSigilProcs(t *testing.T) {
	events := combat.Second{Crit: 1, WeaponSwap: 0.25}
	var c combat.Second
	SigilEarth.CombatProcs(&events, &c)
	assert.InDelta(t, 6/2.5, c.Condition[stats.Bleed].Strength, 1e-12)

	c = combat.Second{}
	SigilBattle.CombatProcs(&events, &c)
	assert.InDelta(t, 60.0/(9+2), c.Boon[stats.Might].Strength, 1e-12)

	c = combat.Second{}
	NoSigil.CombatProcs(&events, &c)
	assert.Equal(t, combat.Second{}, c)
}

func TestTableParsing(t *testing.T) {
	r, ok := ParseRune("krait")
	require.True(t, ok)
	assert.Equal(t, RuneKrait, r)
	assert.True(t, r.HasStats())
	assert.False(t, RunePack.HasStats())

	g, ok := ParseSigil("Torment")
	require.True(t, ok)
	assert.Equal(t, "Torment", g.String())

	f, ok := ParseFood("red lentil saobosa")
	require.True(t, ok)
	assert.Equal(t, FoodRedLentilSaobosa, f)

	_, ok = ParseUtility("nonexistent")
	assert.False(t, ok)

	assert.Len(t, runes, int(NumRunes))
	assert.Len(t, sigils, int(NumSigils))
	assert.Len(t, foods, int(NumFoods))
	assert.Len(t, utilities, int(NumUtilities))
}

func TestIndexTypesVary(t *testing.T) {
	var r Rune
	var g Sigil
	var f Food
	var u Utility
	tup := vary.Tuple{&r, &g, &f, &u}
	require.Equal(t, 4, tup.NumFields())
	assert.Equal(t, uint16(NumSigils), tup.NumFieldValues(1))
	tup.SetField(0, uint16(RuneKrait))
	tup.SetField(3, uint16(UtilityToxicFocusingCrystal))
	assert.Equal(t, RuneKrait, r)
	assert.Equal(t, UtilityToxicFocusingCrystal, u)
}
