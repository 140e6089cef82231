package stats

// Modifiers are percentage adjustments. `StrikeDamage: 5` means all strike damage is
// multiplied by 1.05. The zero value is neutral.
type Modifiers struct {
	StrikeDamage float64
	CritChance   float64
	// CritDamage multiplies the final damage of critical hits. It is not equivalent to
	// ferocity, which adds to the crit multiplier before this is applied.
	CritDamage        float64
	ConditionDamage   PerCondition
	ConditionDuration PerCondition
	BoonDuration      PerBoon
	MaxHealth         float64

	IncomingStrikeDamageReduction float64

	// ConditionPoints and BoonPoints are stack-seconds per second supplied by gear procs
	// rather than the rotation. Superior Sigil of Torment ("2 stacks of torment for 5
	// seconds on crit, cooldown 5s") adds 2*5/interval torment points.
	ConditionPoints PerCondition
	BoonPoints      PerBoon
}

// HealthTier selects the profession base health pool.
type HealthTier uint8

const (
	HealthLow HealthTier = iota
	HealthMid
	HealthHigh
)

func (t HealthTier) BaseHealth() float64 {
	switch t {
	case HealthMid:
		return 5922
	case HealthHigh:
		return 9212
	}
	return 1645
}

// ArmorWeight selects the profession armor class.
type ArmorWeight uint8

const (
	ArmorLight ArmorWeight = iota
	ArmorMedium
	ArmorHeavy
)

// BaseArmor is the defense of a full set of ascended armor of this weight.
func (w ArmorWeight) BaseArmor() float64 {
	switch w {
	case ArmorMedium:
		return 1118
	case ArmorHeavy:
		return 1271
	}
	return 967
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// StrikeFactor is the expected strike damage per point of skill coefficient.
func (s *Stats) StrikeFactor(m *Modifiers) float64 {
	damage := s[Power] / 10
	bonus := 1 + m.StrikeDamage/100
	crit := s.CritChance(m)
	critDamage := (150 + s[Ferocity]/15) * (1 + m.CritDamage/100)
	critFactor := 1 + crit/100*(critDamage-100)/100
	return damage * bonus * critFactor
}

// CritChance in percent, clamped to [0, 100].
func (s *Stats) CritChance(m *Modifiers) float64 {
	return clamp((s[Precision]-895)/21+m.CritChance, 0, 100)
}

// ConditionDuration in percent, capped at 200.
func (s *Stats) ConditionDuration(m *Modifiers, c Condition) float64 {
	return clamp(100+s[Expertise]/15+m.ConditionDuration[c], 0, 200)
}

// ConditionFactor is the damage dealt per stack-second of base duration applied.
func (s *Stats) ConditionFactor(m *Modifiers, c Condition) float64 {
	base, factor := c.DamageParams()
	damage := base + factor*s[ConditionDamage]
	bonus := 1 + m.ConditionDamage[c]/100
	return damage * bonus * s.ConditionDuration(m, c) / 100
}

// BoonDuration in percent, capped at 200.
func (s *Stats) BoonDuration(m *Modifiers, b Boon) float64 {
	return clamp(100+s[Concentration]/15+m.BoonDuration[b], 0, 200)
}

// RegenHeal is the healing per second of one stack of regeneration.
func (s *Stats) RegenHeal(_ *Modifiers) float64 {
	return 130 + 0.125*s[HealingPower]
}

func (s *Stats) MaxHealth(m *Modifiers, tier HealthTier) float64 {
	health := tier.BaseHealth() + s[Vitality]*10
	return health * (1 + m.MaxHealth/100)
}

func (s *Stats) Armor(_ *Modifiers, weight ArmorWeight) float64 {
	return weight.BaseArmor() + s[Toughness]
}

// IncomingStrikeDamageMultiplier applies reductions such as protection or traits.
func (s *Stats) IncomingStrikeDamageMultiplier(m *Modifiers) float64 {
	return clamp(1-m.IncomingStrikeDamageReduction/100, 0, 1)
}
