package combat

import "gear-optimizer/internal/stats"

// Event counts how often something happens per second and its total magnitude per second.
// For strikes the magnitude is the sum of skill coefficients; for conditions and boons it is
// stacks times base duration in seconds.
type Event struct {
	Count    float64
	Strength float64
}

// NewEvent returns an event with the given count and strength.
func NewEvent(count, strength float64) Event {
	return Event{Count: count, Strength: strength}
}

// Single is one occurrence of magnitude x. Scale it by a frequency to get a per-second rate.
func Single(x float64) Event {
	return Event{Count: 1, Strength: x}
}

func (e Event) Add(o Event) Event {
	return Event{Count: e.Count + o.Count, Strength: e.Strength + o.Strength}
}

func (e Event) Sub(o Event) Event {
	return Event{Count: e.Count - o.Count, Strength: e.Strength - o.Strength}
}

func (e Event) Scale(k float64) Event {
	return Event{Count: e.Count * k, Strength: e.Strength * k}
}

// Interval is the average number of seconds between occurrences. Zero count yields +Inf.
func (e Event) Interval() float64 {
	return 1 / e.Count
}

// Second summarizes one averaged second of combat.
type Second struct {
	Strike     Event
	StrikeFlat Event
	Heal       Event
	HealFlat   Event
	Condition  [stats.NumConditions]Event
	Boon       [stats.NumBoons]Event
	Aura       Event

	Cast           float64
	CastHealing    float64
	CastWeaverDual float64
	WeaponSwap     float64
	Flanking       float64
	// Crit is derived from Strike.Count; see UpdateCrit.
	Crit float64
}

func (c Second) Add(o Second) Second {
	c.Strike = c.Strike.Add(o.Strike)
	c.StrikeFlat = c.StrikeFlat.Add(o.StrikeFlat)
	c.Heal = c.Heal.Add(o.Heal)
	c.HealFlat = c.HealFlat.Add(o.HealFlat)
	for i := range c.Condition {
		c.Condition[i] = c.Condition[i].Add(o.Condition[i])
	}
	for i := range c.Boon {
		c.Boon[i] = c.Boon[i].Add(o.Boon[i])
	}
	c.Aura = c.Aura.Add(o.Aura)
	c.Cast += o.Cast
	c.CastHealing += o.CastHealing
	c.CastWeaverDual += o.CastWeaverDual
	c.WeaponSwap += o.WeaponSwap
	c.Flanking += o.Flanking
	c.Crit += o.Crit
	return c
}

func (c Second) Sub(o Second) Second {
	return c.Add(o.Scale(-1))
}

func (c Second) Scale(k float64) Second {
	c.Strike = c.Strike.Scale(k)
	c.StrikeFlat = c.StrikeFlat.Scale(k)
	c.Heal = c.Heal.Scale(k)
	c.HealFlat = c.HealFlat.Scale(k)
	for i := range c.Condition {
		c.Condition[i] = c.Condition[i].Scale(k)
	}
	for i := range c.Boon {
		c.Boon[i] = c.Boon[i].Scale(k)
	}
	c.Aura = c.Aura.Scale(k)
	c.Cast *= k
	c.CastHealing *= k
	c.CastWeaverDual *= k
	c.WeaponSwap *= k
	c.Flanking *= k
	c.Crit *= k
	return c
}

// UpdateCrit sets the crit rate from the strike rate and a crit chance in percent.
func (c *Second) UpdateCrit(critChance float64) {
	c.Crit = c.Strike.Count * critChance / 100
}

// BoonUptimeRaw is the average number of stacks of b, ignoring the stack cap. Values above
// the cap still say how much duration is wasted.
func (c *Second) BoonUptimeRaw(s *stats.Stats, m *stats.Modifiers, b stats.Boon) float64 {
	return c.Boon[b].Strength * s.BoonDuration(m, b) / 100
}

// BoonUptime is the average number of stacks of b, capped at the boon's maximum.
func (c *Second) BoonUptime(s *stats.Stats, m *stats.Modifiers, b stats.Boon) float64 {
	return min(c.BoonUptimeRaw(s, m, b), b.MaxStacks())
}

// ConditionUptime is the average number of stacks of cond on the target, capped.
func (c *Second) ConditionUptime(s *stats.Stats, m *stats.Modifiers, cond stats.Condition) float64 {
	raw := c.Condition[cond].Strength * s.ConditionDuration(m, cond) / 100
	return min(raw, cond.MaxStacks())
}

// StrikeDPS covers coefficient-based and flat strike damage.
func (c *Second) StrikeDPS(s *stats.Stats, m *stats.Modifiers) float64 {
	flat := c.StrikeFlat.Strength * (1 + m.StrikeDamage/100)
	return c.Strike.Strength*s.StrikeFactor(m) + flat
}

// ConditionDPS is the damage per second dealt by cond.
func (c *Second) ConditionDPS(s *stats.Stats, m *stats.Modifiers, cond stats.Condition) float64 {
	return c.Condition[cond].Strength * s.ConditionFactor(m, cond)
}

func (c *Second) DPS(s *stats.Stats, m *stats.Modifiers) float64 {
	dps := c.StrikeDPS(s, m)
	for cond := range stats.NumConditions {
		dps += c.ConditionDPS(s, m, cond)
	}
	return dps
}

// HealPerSecond sums direct heals, healing-power scaled heals and regeneration.
func (c *Second) HealPerSecond(s *stats.Stats, m *stats.Modifiers) float64 {
	hps := c.HealFlat.Strength + c.Heal.Strength*s[stats.HealingPower]
	hps += c.BoonUptime(s, m, stats.Regeneration) * s.RegenHeal(m)
	return hps
}
