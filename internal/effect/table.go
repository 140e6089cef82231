package effect

import (
	"strings"

	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// entry is one selectable rune, sigil, food or utility item.
type entry struct {
	name string
	// stat marks entries with a stat bonus, as opposed to proc-only or unmodelled ones.
	stat   bool
	effect Effect
}

func lookup(table []entry, name string) (int, bool) {
	for i, e := range table {
		if strings.EqualFold(e.name, name) {
			return i, true
		}
	}
	return 0, false
}

func nameOf(table []entry, i int) string {
	if i < len(table) {
		return table[i].name
	}
	return "?"
}

func effectOf(table []entry, i int) Effect {
	if i < len(table) && table[i].effect != nil {
		return table[i].effect
	}
	return NoEffect
}

// onTrigger models "on <trigger>, gain <events> (cooldown: icd seconds)".
func onTrigger(trigger func(*combat.Second) float64, icd float64, gain func(c *combat.Second, freq float64)) Procs {
	return func(events *combat.Second, c *combat.Second) {
		freq := ProcFrequency(icd, trigger(events))
		if freq > 0 {
			gain(c, freq)
		}
	}
}

func onCrit(icd float64, gain func(c *combat.Second, freq float64)) Procs {
	return onTrigger(func(e *combat.Second) float64 { return e.Crit }, icd, gain)
}

func onSwap(icd float64, gain func(c *combat.Second, freq float64)) Procs {
	return onTrigger(func(e *combat.Second) float64 { return e.WeaponSwap }, icd, gain)
}

func onFlank(icd float64, gain func(c *combat.Second, freq float64)) Procs {
	return onTrigger(func(e *combat.Second) float64 { return e.Flanking }, icd, gain)
}

func onHeal(icd float64, gain func(c *combat.Second, freq float64)) Procs {
	return onTrigger(func(e *combat.Second) float64 { return e.CastHealing }, icd, gain)
}

// every fires at a fixed interval regardless of events.
func every(interval float64, gain func(c *combat.Second, freq float64)) Procs {
	return func(_ *combat.Second, c *combat.Second) {
		gain(c, 1/interval)
	}
}

func boon(b stats.Boon, strength float64) func(*combat.Second, float64) {
	return func(c *combat.Second, freq float64) {
		c.Boon[b] = c.Boon[b].Add(combat.Single(strength).Scale(freq))
	}
}

func condition(cond stats.Condition, strength float64) func(*combat.Second, float64) {
	return func(c *combat.Second, freq float64) {
		c.Condition[cond] = c.Condition[cond].Add(combat.Single(strength).Scale(freq))
	}
}

func gains(fs ...func(*combat.Second, float64)) func(*combat.Second, float64) {
	return func(c *combat.Second, freq float64) {
		for _, f := range fs {
			f(c, freq)
		}
	}
}
