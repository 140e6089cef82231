package builds

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/effect"
	"gear-optimizer/internal/stats"
)

// Traits and skills shared by the weaver archetypes.

func gain(ev *combat.Event, strength, freq float64) {
	*ev = ev.Add(combat.Single(strength).Scale(freq))
}

// empoweringFlame: condition damage while attuned to fire.
func empoweringFlame(uptime float64) effect.Effect {
	return effect.Temporary(func(s *stats.Stats, _ *stats.Modifiers, _ *combat.Second) {
		s[stats.ConditionDamage] += uptime * 150
	})
}

var burningPrecision = effect.Permanent(func(_ *stats.Stats, m *stats.Modifiers) {
	m.ConditionDuration[stats.Burn] += 20
})

// burningPrecisionProc burns on a third of crits, every 5 seconds at most.
var burningPrecisionProc = effect.Procs(func(evt, c *combat.Second) {
	gain(&c.Condition[stats.Burn], 3, effect.ProcFrequency(5, evt.Crit/3))
})

var burningRage = effect.Permanent(func(s *stats.Stats, _ *stats.Modifiers) {
	s[stats.ConditionDamage] += 180
})

var pyromancersTraining = effect.Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
	m.StrikeDamage += 10
})

func persistingFlames(stacks float64) effect.Effect {
	return effect.Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		m.StrikeDamage += stacks
	})
}

// superiorElements grants crit chance against weakened foes, and dual attacks apply
// weakness.
var superiorElements = effect.Chain(
	effect.Temporary(func(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
		m.CritChance += c.ConditionUptime(s, m, stats.Weakness) * 15
	}),
	effect.Procs(func(evt, c *combat.Second) {
		gain(&c.Condition[stats.Weakness], 5, effect.ProcFrequency(4, evt.CastWeaverDual))
	}),
)

var elementalRefreshment = effect.Procs(func(evt, c *combat.Second) {
	gain(&c.HealFlat, 523, evt.CastWeaverDual)
	gain(&c.Heal, 0.2875, evt.CastWeaverDual)
})

var weaversProwess = effect.Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
	m.ConditionDamage.AddAll(10)
	m.ConditionDuration.AddAll(20)
})

// elementalPolyphony averages the attunement bonuses over the eight-step rotation
// F/F, E/F, A/E, F/A, F/F, E/F, W/E, F/W.
var elementalPolyphony = effect.Temporary(func(s *stats.Stats, _ *stats.Modifiers, _ *combat.Second) {
	s[stats.Power] += 6.0 / 8 * 120
	s[stats.HealingPower] += 2.0 / 8 * 120
	s[stats.Ferocity] += 2.0 / 8 * 120
	s[stats.Vitality] += 4.0 / 8 * 120
})

var wovenStride = effect.Procs(func(evt, c *combat.Second) {
	gain(&c.Boon[stats.Regeneration], 3, effect.ProcFrequency(3, evt.Boon[stats.Swiftness].Count))
})

// wovenFire is up a third of the time.
var wovenFire = effect.Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
	m.ConditionDamage.AddAll(20.0 / 3)
})

// weaverRotation covers the skills every rotation casts regardless of build.
func weaverRotation(rotation float64) effect.Effect {
	return effect.Procs(func(_, c *combat.Second) {
		c.WeaponSwap += 1 / 4.5
		// Fire Shield
		gain(&c.Aura, 4, 1.0/20)
		// Phoenix
		gain(&c.Boon[stats.Vigor], 5, 1/rotation)
		// Rock Barrier
		gain(&c.HealFlat, 1735, 1/rotation)
		gain(&c.Heal, 0.4, 1/rotation)
		gain(&c.Boon[stats.Resistance], 4, 1/rotation)
		c.CastWeaverDual += 1 / rotation
		// Stone Resonance
		gain(&c.HealFlat, 1069, 5.0/50)
		gain(&c.Heal, 0.15, 5.0/50)
		gain(&c.Boon[stats.Stability], 5, 1.0/50)
	})
}

// sunspot grants an aura twice per rotation.
func sunspot(rotation float64) effect.Effect {
	return effect.Procs(func(_, c *combat.Second) {
		gain(&c.Aura, 3, 2/rotation)
	})
}

// ── Sustain objective ───────────────────────────────────────────────

// Incoming damage at Cairn: auras hit for a fixed strike and agony drains 10% health,
// both every three seconds.
const (
	auraStrike    = 3100000.0
	agonyFraction = 0.10
	hitInterval   = 3.0
	minSwiftness  = 1.05
)

// soloObjective requires enough healing to outlast the incoming damage plus margin, and
// permanent swiftness, then maximizes damage.
func soloObjective(s *stats.Stats, m *stats.Modifiers, c *combat.Second, margin float64) float64 {
	hps := c.HealPerSecond(s, m)
	auraDPS := auraStrike / s.Armor(m, stats.ArmorLight) / hitInterval * s.IncomingStrikeDamageMultiplier(m)
	agonyDPS := s.MaxHealth(m, stats.HealthLow) * agonyFraction / hitInterval
	if need := auraDPS + agonyDPS + margin; hps < need {
		return 30000 + need - hps
	}

	if swift := c.BoonUptimeRaw(s, m, stats.Swiftness); swift < minSwiftness {
		return 20000 + (minSwiftness-swift)*100
	}
	return -c.DPS(s, m)
}
