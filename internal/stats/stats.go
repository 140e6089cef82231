package stats

import "strings"

// Stat enumerates the additive character attributes that gear provides.
type Stat uint8

const (
	Power Stat = iota
	Precision
	Ferocity
	ConditionDamage
	Expertise
	Vitality
	Toughness
	HealingPower
	Concentration

	NumStats
)

var statNames = [NumStats]string{
	"Power",
	"Precision",
	"Ferocity",
	"ConditionDamage",
	"Expertise",
	"Vitality",
	"Toughness",
	"HealingPower",
	"Concentration",
}

func (s Stat) String() string {
	if s < NumStats {
		return statNames[s]
	}
	return "Stat(?)"
}

// ParseStat maps a catalog attribute name to a Stat. Both the camel-case names above and
// the game's attribute names ("ConditionDuration", "BoonDuration", "Healing") are accepted.
func ParseStat(name string) (Stat, bool) {
	switch strings.ToLower(name) {
	case "power":
		return Power, true
	case "precision":
		return Precision, true
	case "ferocity", "critdamage":
		return Ferocity, true
	case "conditiondamage":
		return ConditionDamage, true
	case "expertise", "conditionduration":
		return Expertise, true
	case "vitality":
		return Vitality, true
	case "toughness":
		return Toughness, true
	case "healingpower", "healing":
		return HealingPower, true
	case "concentration", "boonduration":
		return Concentration, true
	}
	return 0, false
}

// Stats holds one value per Stat.
type Stats [NumStats]float64

// BaseStats are the attributes of a max-level character before gear or effects.
var BaseStats = Stats{
	Power:     1000,
	Precision: 1000,
	Vitality:  1000,
	Toughness: 1000,
}

// Uniform returns a Stats with every attribute set to x.
func Uniform(x float64) Stats {
	var s Stats
	for i := range s {
		s[i] = x
	}
	return s
}

func (s Stats) Add(o Stats) Stats {
	for i := range s {
		s[i] += o[i]
	}
	return s
}

func (s Stats) Sub(o Stats) Stats {
	for i := range s {
		s[i] -= o[i]
	}
	return s
}

func (s Stats) Scale(k float64) Stats {
	for i := range s {
		s[i] *= k
	}
	return s
}

// Max returns the per-stat maximum of s and o.
func (s Stats) Max(o Stats) Stats {
	for i := range s {
		if o[i] > s[i] {
			s[i] = o[i]
		}
	}
	return s
}

// Round rounds every attribute to the nearest integer, as the game does per item.
func (s Stats) Round() Stats {
	for i := range s {
		s[i] = roundHalfAway(s[i])
	}
	return s
}

func roundHalfAway(x float64) float64 {
	if x < 0 {
		return -roundHalfAway(-x)
	}
	return float64(int64(x + 0.5))
}

// ── Conditions ──────────────────────────────────────────────────────

// Condition enumerates damaging and non-damaging conditions tracked by the combat model.
type Condition uint8

const (
	Bleed Condition = iota
	Burn
	Confuse
	Poison
	Torment
	Weakness
	Vulnerability
	Cripple
	Immobilize

	NumConditions
)

var conditionNames = [NumConditions]string{
	"Bleed", "Burn", "Confuse", "Poison", "Torment",
	"Weakness", "Vulnerability", "Cripple", "Immobilize",
}

func (c Condition) String() string {
	if c < NumConditions {
		return conditionNames[c]
	}
	return "Condition(?)"
}

// ParseCondition maps a name such as "bleed" to a Condition.
func ParseCondition(name string) (Condition, bool) {
	for i, n := range conditionNames {
		if strings.EqualFold(n, name) {
			return Condition(i), true
		}
	}
	return 0, false
}

// DamageParams returns the per-second damage of one stack as (base, condition damage factor).
// Non-damaging conditions return zeros.
func (c Condition) DamageParams() (base, factor float64) {
	switch c {
	case Bleed:
		return 22, 0.06
	case Burn:
		return 131, 0.155
	case Confuse:
		// over time, PvE
		return 11, 0.03
	case Poison:
		return 33.5, 0.06
	case Torment:
		// stationary target, PvE
		return 31.8, 0.09
	}
	return 0, 0
}

func (c Condition) MaxStacks() float64 {
	switch c {
	case Weakness, Cripple, Immobilize:
		return 1
	}
	return 25
}

// PerCondition holds one value per Condition.
type PerCondition [NumConditions]float64

func (p PerCondition) Sum() float64 {
	var acc float64
	for _, x := range p {
		acc += x
	}
	return acc
}

// AddAll adds x to every condition.
func (p *PerCondition) AddAll(x float64) {
	for i := range p {
		p[i] += x
	}
}

// ── Boons ───────────────────────────────────────────────────────────

// Boon enumerates the buffs tracked by the combat model.
type Boon uint8

const (
	Aegis Boon = iota
	Alacrity
	Fury
	Might
	Protection
	Quickness
	Regeneration
	Resistance
	Resolution
	Stability
	Swiftness
	Vigor

	NumBoons
)

var boonNames = [NumBoons]string{
	"Aegis", "Alacrity", "Fury", "Might", "Protection", "Quickness",
	"Regeneration", "Resistance", "Resolution", "Stability", "Swiftness", "Vigor",
}

func (b Boon) String() string {
	if b < NumBoons {
		return boonNames[b]
	}
	return "Boon(?)"
}

// ParseBoon maps a name such as "might" to a Boon.
func ParseBoon(name string) (Boon, bool) {
	for i, n := range boonNames {
		if strings.EqualFold(n, name) {
			return Boon(i), true
		}
	}
	return 0, false
}

func (b Boon) MaxStacks() float64 {
	if b == Might {
		return 25
	}
	return 1
}

// PerBoon holds one value per Boon.
type PerBoon [NumBoons]float64

func (p PerBoon) Sum() float64 {
	var acc float64
	for _, x := range p {
		acc += x
	}
	return acc
}

// AddAll adds x to every boon.
func (p *PerBoon) AddAll(x float64) {
	for i := range p {
		p[i] += x
	}
}
